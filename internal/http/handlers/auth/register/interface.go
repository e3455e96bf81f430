package register

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
}
