package stats

import (
	"context"
	"time"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	Stats(ctx context.Context, now time.Time) (models.ContactStats, error)
}
