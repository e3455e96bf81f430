package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/itlearnpro/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveContactMessage(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactMessage), args.Error(1)
}

func (m *MockRepository) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactMessage), args.Error(1)
}

func (m *MockRepository) ContactStats(ctx context.Context, dayStart, weekAgo, monthAgo time.Time) (models.ContactStats, error) {
	args := m.Called(ctx, dayStart, weekAgo, monthAgo)
	return args.Get(0).(models.ContactStats), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, message any) error {
	args := m.Called(ctx, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

var validInput = Input{
	Name:    "  Alice  ",
	Email:   " Alice@Example.com ",
	Subject: "Question sur la formation",
	Message: "Bonjour, quand commence la session IA ?",
}

func TestContactService_Submit(t *testing.T) {
	want := models.ContactMessage{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Question sur la formation",
		Message: "Bonjour, quand commence la session IA ?",
		IP:      "10.0.0.1",
	}
	saved := want
	saved.ID = "m1"
	saved.CreatedAt = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		publishErr error
	}{
		{name: "saved and published"},
		{name: "publish failure is not returned", publishErr: errors.New("broker down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			pub := new(MockPublisher)
			repo.On("SaveContactMessage", mock.Anything, want).Return(&saved, nil).Once()
			pub.On("Publish", mock.Anything, rabbitmq.RoutingKeyContact, &saved).Return(tt.publishErr).Once()
			svc := New(repo, pub, nil, newNoopLogger())

			got, err := svc.Submit(context.Background(), validInput, "10.0.0.1")

			require.NoError(t, err)
			assert.Equal(t, "m1", got.ID)
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestContactService_Submit_UnknownIPWithoutPublisher(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SaveContactMessage", mock.Anything, mock.MatchedBy(func(m models.ContactMessage) bool {
		return m.IP == "unknown"
	})).Return(&models.ContactMessage{ID: "m2"}, nil).Once()
	svc := New(repo, nil, nil, newNoopLogger())

	_, err := svc.Submit(context.Background(), validInput, "")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestContactService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(in *Input)
		wantFields []string
	}{
		{name: "short name", mutate: func(in *Input) { in.Name = " A " }, wantFields: []string{"name"}},
		{name: "bad email", mutate: func(in *Input) { in.Email = "not-an-email" }, wantFields: []string{"email"}},
		{name: "short subject", mutate: func(in *Input) { in.Subject = "Hi" }, wantFields: []string{"subject"}},
		{name: "long message", mutate: func(in *Input) { in.Message = strings.Repeat("x", 1001) }, wantFields: []string{"message"}},
		{
			name:       "everything empty",
			mutate:     func(in *Input) { *in = Input{} },
			wantFields: []string{"name", "email", "subject", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := New(repo, nil, nil, newNoopLogger())
			in := validInput
			tt.mutate(&in)

			_, err := svc.Submit(context.Background(), in, "10.0.0.1")

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
			repo.AssertNotCalled(t, "SaveContactMessage", mock.Anything, mock.Anything)
		})
	}
}

func TestContactService_Stats(t *testing.T) {
	now := time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)
	repo := new(MockRepository)
	repo.On("ContactStats", mock.Anything,
		time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 8, 14, 30, 0, 0, time.UTC),
		time.Date(2025, 9, 15, 14, 30, 0, 0, time.UTC),
	).Return(models.ContactStats{Total: 10, Today: 1, ThisWeek: 3, ThisMonth: 7}, nil).Once()
	svc := New(repo, nil, nil, newNoopLogger())

	stats, err := svc.Stats(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 7, stats.ThisMonth)
	repo.AssertExpectations(t)
}

func TestContactService_ListMessages(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListContactMessages", mock.Anything).Return([]models.ContactMessage{{ID: "m2"}, {ID: "m1"}}, nil).Once()
	svc := New(repo, nil, nil, newNoopLogger())

	msgs, err := svc.ListMessages(context.Background())

	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, "m2", msgs[0].ID)
}
