package watch

import "context"

type Service interface {
	WatchVideo(ctx context.Context, userUID, branch string) (int, error)
}
