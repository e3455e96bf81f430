package choose

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	SelectBranch(ctx context.Context, userUID, branchID string) (*models.User, error)
}
