package courseremove

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	DeleteCourse(ctx context.Context, id string) (*models.Course, error)
}
