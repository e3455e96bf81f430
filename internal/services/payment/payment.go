// Package payment ведёт подписки на ветки: пробный период, квоту бесплатных видео и оплату через Stripe.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/paymentprovider"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrQuotaExhausted       = errors.New("free video quota exhausted")
	ErrProvider             = errors.New("payment provider failure")
)

// SubscriptionRepository определяет методы хранилища подписок.
type SubscriptionRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	EnsureSubscription(ctx context.Context, userUID, branch string) (*models.Subscription, error)
	GetSubscription(ctx context.Context, userUID, branch string) (*models.Subscription, error)
	// IncrementVideosWatched атомарно увеличивает счётчик, если квота позволяет.
	IncrementVideosWatched(ctx context.Context, userUID, branch string, limit int) (int, error)
	ActivateSubscription(ctx context.Context, userUID, branch string, customerID, subscriptionID *string) (*models.Subscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (int64, error)
}

// Provider платёжный провайдер.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req paymentprovider.CheckoutRequest) (string, error)
	ParseWebhook(payload []byte, signature string) (*paymentprovider.Event, error)
}

type PaymentService struct {
	repo     SubscriptionRepository
	provider Provider
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func New(repo SubscriptionRepository, provider Provider, m *metrics.Metrics, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: provider,
		metrics:  m,
		log:      log,
	}
}

// CreateCheckoutSession создаёт (при необходимости) пробную подписку и сессию оплаты.
// origin адрес фронтенда, на который Stripe вернёт пользователя.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userUID, branch, origin string) (string, error) {
	const op = "payment.CreateCheckoutSession"
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.EnsureSubscription(ctx, userUID, branch); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	origin = strings.TrimRight(origin, "/")
	url, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CheckoutRequest{
		UserUID:       userUID,
		Branch:        branch,
		CustomerEmail: user.Email,
		SuccessURL:    origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/courses",
	})
	if err != nil {
		s.metrics.IncCheckout(metrics.OutcomeError)
		return "", fmt.Errorf("%s: %w: %v", op, ErrProvider, err)
	}
	s.metrics.IncCheckout(metrics.OutcomeSuccess)
	s.log.Info("checkout session created", slog.String("user", userUID), slog.String("branch", branch))
	return url, nil
}

// StartTrial идемпотентно открывает пробный период на ветке.
func (s *PaymentService) StartTrial(ctx context.Context, userUID, branch string) (models.Quota, error) {
	const op = "payment.StartTrial"
	sub, err := s.repo.EnsureSubscription(ctx, userUID, branch)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return models.Quota{}, ErrUserNotFound
		}
		return models.Quota{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.QuotaFor(sub), nil
}

// Quota возвращает оставшуюся квоту. Отсутствующая подписка даёт нулевую квоту.
func (s *PaymentService) Quota(ctx context.Context, userUID, branch string) (models.Quota, error) {
	const op = "payment.Quota"
	sub, err := s.repo.GetSubscription(ctx, userUID, branch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.QuotaFor(nil), nil
		}
		return models.Quota{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.QuotaFor(sub), nil
}

// WatchVideo учитывает просмотр видео и возвращает новое значение счётчика.
func (s *PaymentService) WatchVideo(ctx context.Context, userUID, branch string) (int, error) {
	const op = "payment.WatchVideo"
	watched, err := s.repo.IncrementVideosWatched(ctx, userUID, branch, models.FreeVideoQuota)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return 0, ErrSubscriptionNotFound
		case errors.Is(err, repository.ErrLimitReached):
			s.metrics.IncQuotaRejection()
			return 0, ErrQuotaExhausted
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.IncVideoWatched()
	return watched, nil
}
