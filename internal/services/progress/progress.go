// Package progress ведёт отметки о прохождении курсов.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrForbidden      = errors.New("progress of another user")
)

// Repository определяет методы хранилища для прогресса.
type Repository interface {
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	// MarkCompleted создаёт или обновляет единственную запись (user, course).
	// Второе значение true, если запись была создана.
	MarkCompleted(ctx context.Context, userUID, courseID string) (*models.Progress, bool, error)
	ListProgress(ctx context.Context, userUID string) ([]models.ProgressDetail, error)
}

type ProgressService struct {
	repo    Repository
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(repo Repository, m *metrics.Metrics, log *slog.Logger) *ProgressService {
	return &ProgressService{
		repo:    repo,
		metrics: m,
		log:     log,
	}
}

// MarkCompleted отмечает курс пройденным. created сообщает, была ли запись новой.
func (s *ProgressService) MarkCompleted(ctx context.Context, userUID, courseID string) (p *models.Progress, created bool, err error) {
	const op = "progress.MarkCompleted"
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrCourseNotFound
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	p, created, err = s.repo.MarkCompleted(ctx, userUID, courseID)
	if err != nil {
		// курс удалён между проверкой и вставкой
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, false, ErrCourseNotFound
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if created {
		s.metrics.IncCompletion()
	}
	s.log.Info("course completed",
		slog.String("user", userUID), slog.String("course", courseID), slog.Bool("created", created))
	return p, created, nil
}

// GetUserProgress возвращает прогресс userUID. Читать можно только свой прогресс.
func (s *ProgressService) GetUserProgress(ctx context.Context, callerUID, userUID string) ([]models.ProgressDetail, error) {
	const op = "progress.GetUserProgress"
	if callerUID != userUID {
		return nil, ErrForbidden
	}
	items, err := s.repo.ListProgress(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
