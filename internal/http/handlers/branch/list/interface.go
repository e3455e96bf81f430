package list

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	ListBranches(ctx context.Context) ([]models.Branch, error)
}
