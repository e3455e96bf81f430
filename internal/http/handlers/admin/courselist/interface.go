package courselist

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
}
