package quiz

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/services/summary"
)

type Service interface {
	GenerateQuiz(ctx context.Context, courseID string) (*summary.Quiz, string, error)
}
