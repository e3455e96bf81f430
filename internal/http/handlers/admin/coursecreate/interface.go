package coursecreate

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	CreateCourse(ctx context.Context, c models.NewCourse) (*models.Course, error)
}
