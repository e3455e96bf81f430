// Package catalog содержит бизнес-логику веток обучения и курсов с кешированием в Redis.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/itlearnpro/internal/cache"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

var (
	ErrBranchNotFound = errors.New("branch not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrNoCourses      = errors.New("no courses for branch")
)

// Repository определяет методы хранилища для веток и курсов.
type Repository interface {
	ListBranches(ctx context.Context) ([]models.Branch, error)
	GetBranch(ctx context.Context, id string) (*models.Branch, error)
	SetSelectedBranch(ctx context.Context, userUID, branchName string) (*models.User, error)
	ListCoursesByBranch(ctx context.Context, branch string) ([]models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, c models.NewCourse) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) (*models.Course, error)
	DeleteAllCourses(ctx context.Context) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения по ключам.
	Invalidate(ctx context.Context, keys ...string) error
	// InvalidatePrefix удаляет все ключи с префиксом.
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// CatalogService отдаёт каталог и управляет курсами.
// Ошибки кеша не прерывают запрос: данные читаются из хранилища.
type CatalogService struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создает новый экземпляр CatalogService. cache может быть nil.
func New(repo Repository, c Cache, ttl time.Duration, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		log:   log,
	}
}

// ListBranches возвращает все ветки.
func (s *CatalogService) ListBranches(ctx context.Context) ([]models.Branch, error) {
	const op = "catalog.ListBranches"
	var branches []models.Branch
	if s.fromCache(ctx, cache.KeyBranches, &branches) {
		return branches, nil
	}

	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.toCache(ctx, cache.KeyBranches, branches)
	return branches, nil
}

// SelectBranch записывает имя ветки в профиль пользователя.
// Неизвестная ветка не меняет пользователя.
func (s *CatalogService) SelectBranch(ctx context.Context, userUID, branchID string) (*models.User, error) {
	const op = "catalog.SelectBranch"
	branch, err := s.repo.GetBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.SetSelectedBranch(ctx, userUID, branch.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ListCoursesByBranch возвращает курсы ветки; пустой результат даёт ErrNoCourses.
func (s *CatalogService) ListCoursesByBranch(ctx context.Context, branch string) ([]models.Course, error) {
	const op = "catalog.ListCoursesByBranch"
	key := cache.KeyCoursesByBranch(branch)

	var courses []models.Course
	if !s.fromCache(ctx, key, &courses) {
		var err error
		courses, err = s.repo.ListCoursesByBranch(ctx, branch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(courses) > 0 {
			s.toCache(ctx, key, courses)
		}
	}

	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}

// ListCourses возвращает все курсы.
func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	const op = "catalog.ListCourses"
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return courses, nil
}

// CreateCourse добавляет курс и сбрасывает кеш его ветки.
func (s *CatalogService) CreateCourse(ctx context.Context, c models.NewCourse) (*models.Course, error) {
	const op = "catalog.CreateCourse"
	course, err := s.repo.CreateCourse(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyCoursesByBranch(course.Branch))
	s.log.Info("course created", slog.String("id", course.ID), slog.String("branch", course.Branch))
	return course, nil
}

// DeleteCourse удаляет курс вместе с прогрессом по нему.
func (s *CatalogService) DeleteCourse(ctx context.Context, id string) (*models.Course, error) {
	const op = "catalog.DeleteCourse"
	course, err := s.repo.DeleteCourse(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyCoursesByBranch(course.Branch))
	return course, nil
}

// DeleteAllCourses удаляет все курсы и возвращает их количество.
func (s *CatalogService) DeleteAllCourses(ctx context.Context) (int64, error) {
	const op = "catalog.DeleteAllCourses"
	n, err := s.repo.DeleteAllCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidatePrefix(ctx, cache.KeyCoursesByBranch("")); err != nil {
			s.log.Warn("failed to invalidate course cache", sl.Err(err))
		}
	}
	return n, nil
}

func (s *CatalogService) fromCache(ctx context.Context, key string, result any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		return false
	}
	return found
}

func (s *CatalogService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("failed to cache value", slog.String("key", key), sl.Err(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}
