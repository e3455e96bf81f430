package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/paymentprovider"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) EnsureSubscription(ctx context.Context, userUID, branch string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockRepository) GetSubscription(ctx context.Context, userUID, branch string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockRepository) IncrementVideosWatched(ctx context.Context, userUID, branch string, limit int) (int, error) {
	args := m.Called(ctx, userUID, branch, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ActivateSubscription(ctx context.Context, userUID, branch string, customerID, subscriptionID *string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, branch, customerID, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockRepository) CancelSubscription(ctx context.Context, subscriptionID string) (int64, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).(int64), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateCheckoutSession(ctx context.Context, req paymentprovider.CheckoutRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) ParseWebhook(payload []byte, signature string) (*paymentprovider.Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Event), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func strPtr(s string) *string { return &s }

func TestPaymentService_CreateCheckoutSession(t *testing.T) {
	user := &models.User{UUID: "u1", Email: "alice@example.com"}
	wantReq := paymentprovider.CheckoutRequest{
		UserUID:       "u1",
		Branch:        "IA",
		CustomerEmail: "alice@example.com",
		SuccessURL:    "http://localhost:3000/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "http://localhost:3000/courses",
	}

	tests := []struct {
		name        string
		setupMocks  func(r *MockRepository, p *MockProvider)
		wantURL     string
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				r.On("GetUser", mock.Anything, "u1").Return(user, nil).Once()
				r.On("EnsureSubscription", mock.Anything, "u1", "IA").
					Return(&models.Subscription{Status: models.SubscriptionTrial}, nil).Once()
				p.On("CreateCheckoutSession", mock.Anything, wantReq).Return("https://checkout.stripe.com/x", nil).Once()
			},
			wantURL: "https://checkout.stripe.com/x",
		},
		{
			name: "provider failure",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				r.On("GetUser", mock.Anything, "u1").Return(user, nil).Once()
				r.On("EnsureSubscription", mock.Anything, "u1", "IA").
					Return(&models.Subscription{Status: models.SubscriptionTrial}, nil).Once()
				p.On("CreateCheckoutSession", mock.Anything, wantReq).Return("", errors.New("stripe down")).Once()
			},
			expectedErr: ErrProvider,
		},
		{
			name: "user gone",
			setupMocks: func(r *MockRepository, _ *MockProvider) {
				r.On("GetUser", mock.Anything, "u1").Return(nil, repository.ErrNotFound).Once()
			},
			expectedErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			provider := new(MockProvider)
			tt.setupMocks(repo, provider)
			svc := New(repo, provider, nil, newNoopLogger())

			url, err := svc.CreateCheckoutSession(context.Background(), "u1", "IA", "http://localhost:3000/")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			}
			repo.AssertExpectations(t)
			provider.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Quota(t *testing.T) {
	tests := []struct {
		name      string
		sub       *models.Subscription
		repoErr   error
		wantQuota *int
		premium   bool
	}{
		{name: "missing subscription", repoErr: repository.ErrNotFound, wantQuota: intPtr(0)},
		{name: "fresh trial", sub: &models.Subscription{Status: models.SubscriptionTrial}, wantQuota: intPtr(5)},
		{name: "trial partially used", sub: &models.Subscription{Status: models.SubscriptionTrial, VideosWatched: 3}, wantQuota: intPtr(2)},
		{name: "canceled", sub: &models.Subscription{Status: models.SubscriptionCanceled, VideosWatched: 1}, wantQuota: intPtr(0)},
		{name: "active", sub: &models.Subscription{Status: models.SubscriptionActive}, premium: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.repoErr != nil {
				repo.On("GetSubscription", mock.Anything, "u1", "Web").Return(nil, tt.repoErr).Once()
			} else {
				repo.On("GetSubscription", mock.Anything, "u1", "Web").Return(tt.sub, nil).Once()
			}
			svc := New(repo, new(MockProvider), nil, newNoopLogger())

			q, err := svc.Quota(context.Background(), "u1", "Web")

			require.NoError(t, err)
			assert.Equal(t, tt.wantQuota, q.Quota)
			assert.Equal(t, tt.premium, q.Premium)
		})
	}
}

func intPtr(i int) *int { return &i }

func TestPaymentService_WatchVideo(t *testing.T) {
	tests := []struct {
		name        string
		repoRet     int
		repoErr     error
		expectedErr error
	}{
		{name: "counted", repoRet: 4},
		{name: "no subscription", repoErr: repository.ErrNotFound, expectedErr: ErrSubscriptionNotFound},
		{name: "quota exhausted", repoErr: repository.ErrLimitReached, expectedErr: ErrQuotaExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("IncrementVideosWatched", mock.Anything, "u1", "Web", models.FreeVideoQuota).Return(tt.repoRet, tt.repoErr).Once()
			svc := New(repo, new(MockProvider), nil, newNoopLogger())

			watched, err := svc.WatchVideo(context.Background(), "u1", "Web")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.repoRet, watched)
		})
	}
}

func TestPaymentService_StartTrial(t *testing.T) {
	repo := new(MockRepository)
	repo.On("EnsureSubscription", mock.Anything, "u1", "DevOps").
		Return(&models.Subscription{Status: models.SubscriptionTrial, VideosWatched: 1}, nil).Once()
	repo.On("EnsureSubscription", mock.Anything, "ghost", "DevOps").Return(nil, repository.ErrInvalidReference).Once()
	svc := New(repo, new(MockProvider), nil, newNoopLogger())

	q, err := svc.StartTrial(context.Background(), "u1", "DevOps")
	require.NoError(t, err)
	require.NotNil(t, q.Quota)
	assert.Equal(t, 4, *q.Quota)

	_, err = svc.StartTrial(context.Background(), "ghost", "DevOps")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	payload := []byte(`{}`)

	tests := []struct {
		name        string
		setupMocks  func(r *MockRepository, p *MockProvider)
		expectedErr error
		wantAnyErr  bool
	}{
		{
			name: "checkout completed activates",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				p.On("ParseWebhook", payload, "sig").Return(&paymentprovider.Event{
					ID: "evt_1", Type: paymentprovider.EventCheckoutCompleted, UserUID: "u1", Branch: "IA",
					CustomerID: strPtr("cus_1"), SubscriptionID: strPtr("sub_1"),
				}, nil).Once()
				r.On("ActivateSubscription", mock.Anything, "u1", "IA", strPtr("cus_1"), strPtr("sub_1")).
					Return(&models.Subscription{Status: models.SubscriptionActive}, nil).Once()
			},
		},
		{
			name: "checkout without metadata is skipped",
			setupMocks: func(_ *MockRepository, p *MockProvider) {
				p.On("ParseWebhook", payload, "sig").Return(&paymentprovider.Event{
					ID: "evt_2", Type: paymentprovider.EventCheckoutCompleted,
				}, nil).Once()
			},
		},
		{
			name: "subscription deleted cancels",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				p.On("ParseWebhook", payload, "sig").Return(&paymentprovider.Event{
					ID: "evt_3", Type: paymentprovider.EventSubscriptionDeleted, SubscriptionID: strPtr("sub_1"),
				}, nil).Once()
				r.On("CancelSubscription", mock.Anything, "sub_1").Return(int64(1), nil).Once()
			},
		},
		{
			name: "unknown subscription is not an error",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				p.On("ParseWebhook", payload, "sig").Return(&paymentprovider.Event{
					ID: "evt_4", Type: paymentprovider.EventSubscriptionDeleted, SubscriptionID: strPtr("sub_x"),
				}, nil).Once()
				r.On("CancelSubscription", mock.Anything, "sub_x").Return(int64(0), repository.ErrNotFound).Once()
			},
		},
		{
			name: "bad signature",
			setupMocks: func(_ *MockRepository, p *MockProvider) {
				p.On("ParseWebhook", payload, "sig").Return(nil, paymentprovider.ErrInvalidSignature).Once()
			},
			expectedErr: ErrInvalidSignature,
		},
		{
			name: "storage failure is returned for retry",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				p.On("ParseWebhook", payload, "sig").Return(&paymentprovider.Event{
					ID: "evt_5", Type: paymentprovider.EventCheckoutCompleted, UserUID: "u1", Branch: "IA",
				}, nil).Once()
				r.On("ActivateSubscription", mock.Anything, "u1", "IA", (*string)(nil), (*string)(nil)).
					Return(nil, errors.New("db down")).Once()
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			provider := new(MockProvider)
			tt.setupMocks(repo, provider)
			svc := New(repo, provider, nil, newNoopLogger())

			err := svc.HandleWebhook(context.Background(), payload, "sig")

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.wantAnyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			provider.AssertExpectations(t)
		})
	}
}
