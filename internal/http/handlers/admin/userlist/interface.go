package userlist

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}
