package userremove

import "context"

type Service interface {
	DeleteUser(ctx context.Context, userUID string) error
}
