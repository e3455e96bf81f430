package stats

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

func (m *MockService) Stats(ctx context.Context) (*models.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminStats), args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	web := "Web"

	t.Run("aggregates", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Stats", mock.Anything).Return(&models.AdminStats{
			UsersByRole:     []models.GroupCount{{ID: &web, Count: 2}},
			UsersByBranch:   []models.GroupCount{{ID: nil, Count: 1}},
			CoursesByBranch: []models.GroupCount{},
			Totals:          models.Totals{TotalUsers: 3, TotalCourses: 10},
			AvgCompletion:   67,
		}, nil)

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"usersByRole":[{"_id":"Web","count":2}],
			"usersByBranch":[{"_id":null,"count":1}],
			"coursesByBranch":[],
			"totals":{"totalUsers":3,"totalCourses":10},
			"avgCompletion":67
		}`, rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Stats", mock.Anything).Return(nil, errors.New("db down"))

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"status":"Error","error":"Erreur stats"}`, rec.Body.String())
	})
}
