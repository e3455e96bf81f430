package userprogress

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	GetUserProgress(ctx context.Context, callerUID, userUID string) ([]models.ProgressDetail, error)
}
