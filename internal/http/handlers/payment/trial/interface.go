package trial

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	StartTrial(ctx context.Context, userUID, branch string) (models.Quota, error)
}
