package userremoveall

import "context"

type Service interface {
	DeleteAllUsers(ctx context.Context) (int64, error)
}
