package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

// Authenticator проверяет токен сессии и возвращает идентификатор пользователя.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// UserGetter читает пользователя из хранилища.
type UserGetter interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}
