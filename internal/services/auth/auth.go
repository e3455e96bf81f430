// Package auth содержит логику регистрации, входа и проверки сессий пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/itlearnpro/internal/lib/jwt"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/password"
	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordTooLong    = errors.New("password too long")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя. Занятый email даёт repository.ErrAlreadyExists.
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по идентификатору или repository.ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	metrics  *metrics.Metrics
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, jwtMaker jwt.Maker, m *metrics.Metrics) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		metrics:  m,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает нового пользователя с ролью "user".
func (s *AuthService) Register(ctx context.Context, email, rawPassword, name string) (*models.User, error) {
	const op = "auth.Register"
	email = NormalizeEmail(email)

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, strings.TrimSpace(name), email, hashed, models.RoleUser)
	if err != nil {
		// гонка двух регистраций ловится уникальным индексом
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.IncRegistration()
	return user, nil
}

// Login проверяет пароль пользователя и выдаёт JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, userUID string, err error) {
	const op = "auth.Login"
	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		s.metrics.IncLogin(metrics.OutcomeError)
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		s.metrics.IncLogin(metrics.OutcomeError)
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.UUID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.IncLogin(metrics.OutcomeSuccess)
	return token, user.UUID, nil
}

// Authenticate проверяет JWT и возвращает идентификатор пользователя.
func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.UserUID, nil
}

// GetUser возвращает пользователя; роль всегда читается из хранилища.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "auth.GetUser"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
