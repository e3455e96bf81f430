package models

import "time"

// Статусы подписки.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// FreeVideoQuota количество бесплатных видео в пробном периоде на одну ветку.
const FreeVideoQuota = 5

// Subscription пробный или оплаченный доступ пользователя к одной ветке.
type Subscription struct {
	ID               string    `json:"_id"`
	UserUID          string    `json:"userId"`
	StripeCustomerID *string   `json:"stripeCustomerId,omitempty"`
	SubscriptionID   *string   `json:"subscriptionId,omitempty"`
	Status           string    `json:"status"`
	VideosWatched    int       `json:"videosWatched"`
	Branch           string    `json:"branch"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Quota остаток бесплатных просмотров. Quota равен nil для безлимитного доступа.
type Quota struct {
	Quota     *int `json:"quota"`
	Premium   bool `json:"premium"`
	Unlimited bool `json:"unlimited,omitempty"`
}

// QuotaFor вычисляет остаток просмотров по строке подписки; nil означает отсутствие подписки.
func QuotaFor(sub *Subscription) Quota {
	zero := 0
	if sub == nil || sub.Status == SubscriptionCanceled {
		return Quota{Quota: &zero}
	}
	if sub.Status == SubscriptionActive {
		return Quota{Premium: true, Unlimited: true}
	}
	left := max(0, FreeVideoQuota-sub.VideosWatched)
	return Quota{Quota: &left}
}
