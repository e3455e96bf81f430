package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/itlearnpro/internal/services/summary"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GenerateQuiz(ctx context.Context, courseID string) (*summary.Quiz, string, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*summary.Quiz), args.String(1), args.Error(2)
}

func TestQuizHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		quiz           *summary.Quiz
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "квиз готов",
			quiz: &summary.Quiz{Questions: []summary.Question{
				{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
			}},
			expectedStatus: http.StatusOK,
			expectedBody: `{"quiz":{"questions":[{"question":"Q?","options":["a","b","c","d"],"correctAnswer":"a"}]},` +
				`"courseTitle":"HTML"}`,
		},
		{
			name:           "курс не найден",
			mockErr:        summary.ErrCourseNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"Cours non trouvé"}`,
		},
		{
			name:           "невалидный формат",
			mockErr:        summary.ErrQuizFormat,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Format de quiz invalide"}`,
		},
		{
			name:           "сбой модели",
			mockErr:        errors.New("timeout"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Erreur lors de la génération du quiz"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.mockErr != nil {
				svc.On("GenerateQuiz", mock.Anything, "c1").Return(nil, "", tt.mockErr)
			} else {
				svc.On("GenerateQuiz", mock.Anything, "c1").Return(tt.quiz, "HTML", nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/summary/quiz/c1", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("courseId", "c1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}
