package courseremoveall

import "context"

type Service interface {
	DeleteAllCourses(ctx context.Context) (int64, error)
}
