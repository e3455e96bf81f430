package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/itlearnpro/internal/paymentprovider"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// HandleWebhook применяет событие Stripe к подпискам.
//
// checkout.session.completed переводит подписку в active, customer.subscription.deleted
// отменяет её. Остальные события игнорируются.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	const op = "payment.HandleWebhook"
	ev, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, paymentprovider.ErrInvalidSignature) {
			return ErrInvalidSignature
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	log := s.log.With(slog.String("op", op), slog.String("event_id", ev.ID), slog.String("type", ev.Type))

	switch ev.Type {
	case paymentprovider.EventCheckoutCompleted:
		if ev.UserUID == "" || ev.Branch == "" {
			log.Warn("checkout session without metadata, skipping")
			return nil
		}
		if _, err := s.repo.ActivateSubscription(ctx, ev.UserUID, ev.Branch, ev.CustomerID, ev.SubscriptionID); err != nil {
			// пользователь удалён до оплаты
			if errors.Is(err, repository.ErrInvalidReference) {
				log.Warn("subscription owner no longer exists", slog.String("user", ev.UserUID))
				return nil
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Info("subscription activated", slog.String("user", ev.UserUID), slog.String("branch", ev.Branch))

	case paymentprovider.EventSubscriptionDeleted:
		if ev.SubscriptionID == nil {
			return nil
		}
		if _, err := s.repo.CancelSubscription(ctx, *ev.SubscriptionID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Warn("unknown subscription canceled", slog.String("subscription", *ev.SubscriptionID))
				return nil
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Info("subscription canceled", slog.String("subscription", *ev.SubscriptionID))

	default:
		log.Debug("event ignored")
	}
	return nil
}
