// Package profile отдаёт профиль пользователя и выпускает сертификаты.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/itlearnpro/internal/certificate"
	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

// MinCompletedForCertificate минимальное число пройденных курсов для сертификата.
const MinCompletedForCertificate = 5

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNotEnoughCompleted = errors.New("not enough completed courses")
)

type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error)
	ListProgress(ctx context.Context, userUID string) ([]models.ProgressDetail, error)
	CountCompleted(ctx context.Context, userUID string) (int, error)
}

type CertificateRenderer interface {
	Render(d certificate.Data) ([]byte, error)
}

// Stats сводка прогресса в профиле.
type Stats struct {
	CompletedBranches int `json:"completedBranches"`
	TotalCourses      int `json:"totalCourses"`
}

// Profile пользователь вместе с прогрессом.
type Profile struct {
	User     *models.User            `json:"user"`
	Progress []models.ProgressDetail `json:"progress"`
	Stats    Stats                   `json:"stats"`
}

type ProfileService struct {
	repo     Repository
	renderer CertificateRenderer
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func New(repo Repository, renderer CertificateRenderer, m *metrics.Metrics, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:     repo,
		renderer: renderer,
		metrics:  m,
		log:      log,
	}
}

// GetProfile возвращает профиль. completedBranches считает разные ветки среди пройденных курсов.
func (s *ProfileService) GetProfile(ctx context.Context, userUID string) (*Profile, error) {
	const op = "profile.GetProfile"
	user, err := s.getUser(ctx, op, userUID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListProgress(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	branches := make(map[string]struct{})
	for _, p := range items {
		if p.Completed && p.Course.Branch != "" {
			branches[p.Course.Branch] = struct{}{}
		}
	}
	return &Profile{
		User:     user,
		Progress: items,
		Stats: Stats{
			CompletedBranches: len(branches),
			TotalCourses:      len(items),
		},
	}, nil
}

// UpdateProfile меняет имя и email.
func (s *ProfileService) UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error) {
	const op = "profile.UpdateProfile"
	user, err := s.repo.UpdateProfile(ctx, userUID, strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GenerateCertificate рисует сертификат, если пройдено не меньше MinCompletedForCertificate курсов.
// Ничего не сохраняется.
func (s *ProfileService) GenerateCertificate(ctx context.Context, userUID string) ([]byte, error) {
	const op = "profile.GenerateCertificate"
	user, err := s.getUser(ctx, op, userUID)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CountCompleted(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if completed < MinCompletedForCertificate {
		return nil, ErrNotEnoughCompleted
	}

	pdf, err := s.renderer.Render(certificate.Data{
		Name:           user.Name,
		CompletedCount: completed,
		Branch:         user.SelectedBranch,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.IncCertificate()
	s.log.Info("certificate generated", slog.String("user", userUID), slog.Int("completed", completed))
	return pdf, nil
}

func (s *ProfileService) getUser(ctx context.Context, op, userUID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
