package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockUser       *models.User
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantMessage    string
		wantError      string
	}{
		{
			name:           "valid registration",
			body:           `{"name":"A","email":"a@x.com","password":"pw"}`,
			mockUser:       &models.User{UUID: "u1", Email: "a@x.com", PasswordHash: "hash"},
			callsService:   true,
			wantStatusCode: http.StatusCreated,
			wantMessage:    "Utilisateur créé avec succès",
		},
		{
			name:           "duplicate email",
			body:           `{"name":"A","email":"a@x.com","password":"pw"}`,
			mockErr:        auth.ErrEmailTaken,
			callsService:   true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email déjà utilisé",
		},
		{
			name:           "store failure",
			body:           `{"name":"A","email":"a@x.com","password":"pw"}`,
			mockErr:        errors.New("db down"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "Erreur serveur",
		},
		{
			name:           "invalid json",
			body:           `not a json`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Requête invalide",
		},
		{
			name:           "missing password",
			body:           `{"name":"A","email":"a@x.com"}`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "le champ Password est requis",
		},
		{
			name:           "password over 72 characters",
			body:           `{"name":"A","email":"a@x.com","password":"` + strings.Repeat("a", 80) + `"}`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "le champ Password doit contenir au plus 72 caractères",
		},
		{
			name:           "malformed email",
			body:           `{"name":"A","email":"nope","password":"pw"}`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "le champ Email doit être un email valide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callsService {
				svc.On("Register", mock.Anything, "a@x.com", "pw", "A").Return(tt.mockUser, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.NotContains(t, rec.Body.String(), "hash")

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			}
			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestRegisterHandler_MultibytePasswordTooLong(t *testing.T) {
	// 40 символов проходят валидацию, но это 80 байт
	pw := strings.Repeat("é", 40)
	svc := new(ServiceMock)
	svc.On("Register", mock.Anything, "a@x.com", pw, "A").Return(nil, auth.ErrPasswordTooLong).Once()
	handler := New(newNoopLogger(), svc)

	body := `{"name":"A","email":"a@x.com","password":"` + pw + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Mot de passe trop long (72 octets maximum)", got["error"])
	svc.AssertExpectations(t)
}
