package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Stats(ctx context.Context, now time.Time) (models.ContactStats, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(models.ContactStats), args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)

	t.Run("counts", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Stats", mock.Anything, now).Return(models.ContactStats{Total: 9, Today: 1, ThisWeek: 3, ThisMonth: 6}, nil)
		h := New(logger, svc)
		h.now = func() time.Time { return now }

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact/stats", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"stats":{"total":9,"today":1,"thisWeek":3,"thisMonth":6}}`, rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Stats", mock.Anything, now).Return(models.ContactStats{}, errors.New("db down"))
		h := New(logger, svc)
		h.now = func() time.Time { return now }

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})
}
