package login

import "context"

// Service описывает вход пользователя.
type Service interface {
	Login(ctx context.Context, email, password string) (token, userUID string, err error)
}
