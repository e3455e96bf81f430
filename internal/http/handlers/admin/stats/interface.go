package stats

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}
