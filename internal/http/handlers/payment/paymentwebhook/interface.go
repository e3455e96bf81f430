package paymentwebhook

import "context"

type Service interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}
