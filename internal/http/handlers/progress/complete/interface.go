package complete

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	MarkCompleted(ctx context.Context, userUID, courseID string) (*models.Progress, bool, error)
}
