package bybranch

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	ListCoursesByBranch(ctx context.Context, branch string) ([]models.Course, error)
}
