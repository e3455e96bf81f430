package paymentprovider

import "errors"

// Ключи metadata сессии оплаты.
const (
	MetadataUserUID = "user_uid"
	MetadataBranch  = "branch"
)

// Типы событий вебхука, которые обрабатывает сервис.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// ErrInvalidSignature подпись вебхука не прошла проверку.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// CheckoutRequest параметры сессии оплаты премиум-доступа к ветке.
type CheckoutRequest struct {
	UserUID       string
	Branch        string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// Event событие вебхука, приведённое к полям, нужным сервису.
type Event struct {
	ID             string
	Type           string
	UserUID        string
	Branch         string
	CustomerID     *string
	SubscriptionID *string
}
