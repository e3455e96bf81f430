package userremove

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

	"github.com/magabrotheeeer/itlearnpro/internal/services/admin"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) DeleteUser(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func TestUserRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "успешное удаление",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"User supprimé","userId":"u7"}`,
		},
		{
			name:           "не найден",
			mockErr:        admin.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"User non trouvé"}`,
		},
		{
			name:           "ошибка сервиса",
			mockErr:        errors.New("db error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"Erreur serveur"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("DeleteUser", mock.Anything, "u7").Return(tt.mockErr)

			req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/u7", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "u7")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
