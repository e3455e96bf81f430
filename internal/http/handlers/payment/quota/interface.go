package quota

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	Quota(ctx context.Context, userUID, branch string) (models.Quota, error)
}
