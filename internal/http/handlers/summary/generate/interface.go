package generate

import "context"

type Service interface {
	GenerateSummary(ctx context.Context, courseID string) (summary, title string, err error)
}
