package quota

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

	"github.com/magabrotheeeer/itlearnpro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Quota(ctx context.Context, userUID, branch string) (models.Quota, error) {
	args := m.Called(ctx, userUID, branch)
	return args.Get(0).(models.Quota), args.Error(1)
}

func TestQuotaHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		sub            *models.Subscription
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "нет подписки",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"quota":0,"premium":false}`,
		},
		{
			name:           "пробный период",
			sub:            &models.Subscription{Status: models.SubscriptionTrial, VideosWatched: 2},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"quota":3,"premium":false}`,
		},
		{
			name:           "активная подписка",
			sub:            &models.Subscription{Status: models.SubscriptionActive},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"quota":null,"premium":true,"unlimited":true}`,
		},
		{
			name:           "ошибка хранилища",
			mockErr:        errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Erreur quota"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.mockErr != nil {
				svc.On("Quota", mock.Anything, "u1", "Web").Return(models.Quota{}, tt.mockErr)
			} else {
				svc.On("Quota", mock.Anything, "u1", "Web").Return(models.QuotaFor(tt.sub), nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/payment/quota/Web", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("branch", "Web")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithUserUID(ctx, "u1"))
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}
