package update

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error)
}
