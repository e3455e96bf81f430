package paymentcreate

import "context"

type Service interface {
	CreateCheckoutSession(ctx context.Context, userUID, branch, origin string) (string, error)
}
