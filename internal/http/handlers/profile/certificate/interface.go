package certificate

import "context"

type Service interface {
	GenerateCertificate(ctx context.Context, userUID string) ([]byte, error)
}
