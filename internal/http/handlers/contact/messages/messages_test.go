package messages

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactMessage), args.Error(1)
}

func TestMessagesHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("empty log", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListMessages", mock.Anything).Return(nil, nil)

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact/messages", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"count":0,"messages":[]}`, rec.Body.String())
	})

	t.Run("messages with count", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListMessages", mock.Anything).Return([]models.ContactMessage{{ID: "m2"}, {ID: "m1"}}, nil)

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact/messages", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":2`)
		assert.Contains(t, rec.Body.String(), `"id":"m2"`)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListMessages", mock.Anything).Return(nil, errors.New("db down"))

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact/messages", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})
}
