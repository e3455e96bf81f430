package usercreate

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
}
