// Package summary генерирует конспекты и квизы по курсам через языковую модель.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/itlearnpro/internal/config"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

const (
	kindSummary = "summary"
	kindQuiz    = "quiz"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrGeneration     = errors.New("llm generation failed")
	ErrQuizFormat     = errors.New("invalid quiz format")
)

type CourseGetter interface {
	GetCourse(ctx context.Context, id string) (*models.Course, error)
}

// Completer выполняет запрос к языковой модели.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Question вопрос квиза.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz квиз по курсу.
type Quiz struct {
	Questions []Question `json:"questions"`
}

type SummaryService struct {
	courses          CourseGetter
	llm              Completer
	timeout          time.Duration
	summaryMaxTokens int
	quizMaxTokens    int
	metrics          *metrics.Metrics
	log              *slog.Logger
}

func New(courses CourseGetter, llm Completer, cfg config.OpenAI, m *metrics.Metrics, log *slog.Logger) *SummaryService {
	return &SummaryService{
		courses:          courses,
		llm:              llm,
		timeout:          cfg.Timeout,
		summaryMaxTokens: cfg.SummaryMaxTokens,
		quizMaxTokens:    cfg.QuizMaxTokens,
		metrics:          m,
		log:              log,
	}
}

// GenerateSummary возвращает конспект курса и его название.
func (s *SummaryService) GenerateSummary(ctx context.Context, courseID string) (summary, title string, err error) {
	const op = "summary.GenerateSummary"
	course, err := s.getCourse(ctx, op, courseID)
	if err != nil {
		return "", "", err
	}

	prompt := fmt.Sprintf("Résume ce cours en 300 mots maximum en français. Cours : %s. Description : %s. "+
		"Rends-le clair et structuré pour un étudiant débutant en IT.", course.Title, course.Description)

	text, err := s.complete(ctx, kindSummary, prompt, s.summaryMaxTokens)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return text, course.Title, nil
}

// GenerateQuiz возвращает квиз из пяти вопросов по курсу.
func (s *SummaryService) GenerateQuiz(ctx context.Context, courseID string) (*Quiz, string, error) {
	const op = "summary.GenerateQuiz"
	course, err := s.getCourse(ctx, op, courseID)
	if err != nil {
		return nil, "", err
	}

	prompt := fmt.Sprintf("Génère un quiz de 5 questions à choix multiple (MCQ) en français sur ce cours. "+
		"Chaque question doit avoir 4 options (A, B, C, D) et une réponse correcte. "+
		`Format JSON : { "questions": [{ "question": "...", "options": ["A: ...", "B: ...", "C: ...", "D: ..."], "correctAnswer": "A" }] }. `+
		"Cours : %s. Description : %s. Questions adaptées à un débutant.", course.Title, course.Description)

	text, err := s.complete(ctx, kindQuiz, prompt, s.quizMaxTokens)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	quiz, err := ParseQuiz(text)
	if err != nil {
		s.log.Warn("model returned malformed quiz", slog.String("course", courseID), sl.Err(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return quiz, course.Title, nil
}

// ParseQuiz разбирает ответ модели. Markdown-ограждение ```json снимается.
// Поле questions обязано быть массивом.
func ParseQuiz(text string) (*Quiz, error) {
	raw := []byte(stripFences(text))

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuizFormat, err)
	}
	questions, ok := probe["questions"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(questions), []byte("[")) {
		return nil, fmt.Errorf("%w: questions is not an array", ErrQuizFormat)
	}

	var quiz Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuizFormat, err)
	}
	return &quiz, nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// язык после ограждения: ```json
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}

func (s *SummaryService) complete(ctx context.Context, kind, prompt string, maxTokens int) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.llm.Complete(ctx, prompt, maxTokens)
	if err != nil {
		s.metrics.IncLLMCall(kind, metrics.OutcomeError)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	s.metrics.IncLLMCall(kind, metrics.OutcomeSuccess)
	return text, nil
}

func (s *SummaryService) getCourse(ctx context.Context, op, courseID string) (*models.Course, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return course, nil
}
