// Package admin содержит операции администрирования пользователей и статистику платформы.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userUID string) error
	DeleteAllUsers(ctx context.Context) (int64, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

// Registrar создаёт учётные записи по тем же правилам, что и регистрация.
type Registrar interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
}

type AdminService struct {
	repo      Repository
	registrar Registrar
	log       *slog.Logger
}

func New(repo Repository, registrar Registrar, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:      repo,
		registrar: registrar,
		log:       log,
	}
}

// ListUsers возвращает пользователей, новые первыми.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "admin.ListUsers"
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// CreateUser создаёт пользователя с ролью user. Ошибки регистратора возвращаются как есть.
func (s *AdminService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	user, err := s.registrar.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	s.log.Info("user created by admin", slog.String("user", user.UUID))
	return user, nil
}

// DeleteUser удаляет пользователя вместе с его прогрессом и подписками.
func (s *AdminService) DeleteUser(ctx context.Context, userUID string) error {
	const op = "admin.DeleteUser"
	if err := s.repo.DeleteUser(ctx, userUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user deleted", slog.String("user", userUID))
	return nil
}

// DeleteAllUsers удаляет всех пользователей, включая администраторов.
func (s *AdminService) DeleteAllUsers(ctx context.Context) (int64, error) {
	const op = "admin.DeleteAllUsers"
	n, err := s.repo.DeleteAllUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Warn("all users deleted", slog.Int64("count", n))
	return n, nil
}

// Stats пересчитывает статистику при каждом вызове.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	const op = "admin.Stats"
	stats, err := s.repo.AdminStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}
