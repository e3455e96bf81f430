// Package contact принимает сообщения формы обратной связи и уведомляет поддержку.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/itlearnpro/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

const unknownIP = "unknown"

// Input поля формы после обрезки пробелов.
type Input struct {
	Name    string `json:"name" validate:"min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"min=5,max=200"`
	Message string `json:"message" validate:"min=10,max=1000"`
}

var fieldMessages = map[string]string{
	"name":    "Le nom doit contenir entre 2 et 100 caractères",
	"email":   "Email invalide",
	"subject": "Le sujet doit contenir entre 5 et 200 caractères",
	"message": "Le message doit contenir entre 10 et 1000 caractères",
}

// FieldError ошибка одного поля формы.
type FieldError struct {
	Field   string `json:"param"`
	Message string `json:"msg"`
}

// ValidationError список ошибок полей.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

type Repository interface {
	SaveContactMessage(ctx context.Context, m models.ContactMessage) (*models.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	ContactStats(ctx context.Context, dayStart, weekAgo, monthAgo time.Time) (models.ContactStats, error)
}

// Publisher публикует уведомления в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

type ContactService struct {
	repo      Repository
	publisher Publisher
	validate  *validator.Validate
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// New создаёт ContactService. publisher может быть nil: сообщения тогда только сохраняются.
func New(repo Repository, publisher Publisher, m *metrics.Metrics, log *slog.Logger) *ContactService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return &ContactService{
		repo:      repo,
		publisher: publisher,
		validate:  v,
		metrics:   m,
		log:       log,
	}
}

// Submit проверяет и сохраняет сообщение, затем публикует уведомление.
// Ошибка публикации только логируется.
func (s *ContactService) Submit(ctx context.Context, in Input, ip string) (*models.ContactMessage, error) {
	const op = "contact.Submit"
	in = Input{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	if ip == "" {
		ip = unknownIP
	}

	saved, err := s.repo.SaveContactMessage(ctx, models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		IP:      ip,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.IncContactMessage()
	s.log.Info("contact message received",
		slog.String("id", saved.ID), slog.String("email", saved.Email), slog.String("subject", saved.Subject))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyContact, saved); err != nil {
			s.log.Warn("failed to publish contact notification", slog.String("id", saved.ID), sl.Err(err))
		}
	}
	return saved, nil
}

// ListMessages возвращает сообщения, новые первыми.
func (s *ContactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	const op = "contact.ListMessages"
	msgs, err := s.repo.ListContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return msgs, nil
}

// Stats считает сообщения с начала дня, за 7 дней и за месяц до now.
func (s *ContactService) Stats(ctx context.Context, now time.Time) (models.ContactStats, error) {
	const op = "contact.Stats"
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := s.repo.ContactStats(ctx, dayStart, now.AddDate(0, 0, -7), now.AddDate(0, -1, 0))
	if err != nil {
		return models.ContactStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func (s *ContactService) check(in Input) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	seen := make(map[string]bool)
	for _, fe := range verrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		out.Fields = append(out.Fields, FieldError{Field: field, Message: fieldMessages[field]})
	}
	return out
}
