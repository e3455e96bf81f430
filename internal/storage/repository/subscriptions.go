package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

const subscriptionColumns = `id, user_uid, stripe_customer_id, subscription_id, status, videos_watched, branch, created_at`

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var customerID, subscriptionID sql.NullString
	if err := row.Scan(&sub.ID, &sub.UserUID, &customerID, &subscriptionID,
		&sub.Status, &sub.VideosWatched, &sub.Branch, &sub.CreatedAt); err != nil {
		return nil, err
	}
	sub.StripeCustomerID = stringPtr(customerID)
	sub.SubscriptionID = stringPtr(subscriptionID)
	return sub, nil
}

// EnsureSubscription возвращает подписку пользователя на ветку, создавая пробную при отсутствии.
func (s *Storage) EnsureSubscription(ctx context.Context, userUID, branch string) (*models.Subscription, error) {
	const op = "storage.EnsureSubscription"
	query := `INSERT INTO subscriptions (user_uid, branch)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid, branch) DO UPDATE SET branch = EXCLUDED.branch
			  RETURNING ` + subscriptionColumns
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, userUID, branch))
	if err != nil {
		return nil, wrap(op, err)
	}
	return sub, nil
}

// GetSubscription возвращает подписку пользователя на ветку.
func (s *Storage) GetSubscription(ctx context.Context, userUID, branch string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_uid = $1 AND branch = $2`,
		userUID, branch))
	if err != nil {
		return nil, wrap(op, err)
	}
	return sub, nil
}

// IncrementVideosWatched атомарно увеличивает счётчик просмотров, если квота позволяет.
//
// ErrNotFound означает отсутствие подписки, ErrLimitReached исчерпанную квоту
// или отменённую подписку.
func (s *Storage) IncrementVideosWatched(ctx context.Context, userUID, branch string, limit int) (int, error) {
	const op = "storage.IncrementVideosWatched"
	query := `WITH upd AS (
			      UPDATE subscriptions
			      SET videos_watched = videos_watched + 1
			      WHERE user_uid = $1 AND branch = $2
			        AND (status = 'active' OR (status = 'trial' AND videos_watched < $3))
			      RETURNING videos_watched
			  )
			  SELECT (SELECT videos_watched FROM upd),
			         EXISTS (SELECT 1 FROM subscriptions WHERE user_uid = $1 AND branch = $2)`
	var watched sql.NullInt64
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, branch, limit).Scan(&watched, &exists); err != nil {
		return 0, wrap(op, err)
	}
	if watched.Valid {
		return int(watched.Int64), nil
	}
	if !exists {
		return 0, wrap(op, ErrNotFound)
	}
	return 0, wrap(op, ErrLimitReached)
}

// ActivateSubscription переводит подписку в active и сохраняет идентификаторы Stripe.
func (s *Storage) ActivateSubscription(ctx context.Context, userUID, branch string, customerID, subscriptionID *string) (*models.Subscription, error) {
	const op = "storage.ActivateSubscription"
	query := `INSERT INTO subscriptions (user_uid, branch, status, stripe_customer_id, subscription_id)
			  VALUES ($1, $2, 'active', $3, $4)
			  ON CONFLICT (user_uid, branch) DO UPDATE
			  SET status = 'active',
			      stripe_customer_id = COALESCE(EXCLUDED.stripe_customer_id, subscriptions.stripe_customer_id),
			      subscription_id = COALESCE(EXCLUDED.subscription_id, subscriptions.subscription_id)
			  RETURNING ` + subscriptionColumns
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query,
		userUID, branch, nullString(customerID), nullString(subscriptionID)))
	if err != nil {
		return nil, wrap(op, err)
	}
	return sub, nil
}

// CancelSubscription отменяет подписку по идентификатору подписки Stripe.
func (s *Storage) CancelSubscription(ctx context.Context, subscriptionID string) (int64, error) {
	const op = "storage.CancelSubscription"
	res, err := s.DB.ExecContext(ctx,
		`UPDATE subscriptions SET status = 'canceled' WHERE subscription_id = $1`, subscriptionID)
	if err != nil {
		return 0, wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(op, err)
	}
	if n == 0 {
		return 0, wrap(op, ErrNotFound)
	}
	return n, nil
}
