// internal/repository/postgres/push_subscription_repo.go
package postgres

import (
	"context"
	"fmt"

	"homescout-service/internal/domain/push"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PushSubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewPushSubscriptionRepository(db *pgxpool.Pool) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{db: db}
}

// Upsert stores a subscription, refreshing the keys when the browser
// re-registers the same endpoint.
func (r *PushSubscriptionRepository) Upsert(ctx context.Context, s *push.Subscription) error {
	query := `
		INSERT INTO webpush_subscriptions (id, user_id, endpoint, p256dh, auth)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, endpoint)
		DO UPDATE SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		s.ID, s.UserID, s.Endpoint, s.P256DH, s.Auth,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert push subscription: %w", err)
	}

	return nil
}

func (r *PushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, userID int64, endpoint string) error {
	query := `DELETE FROM webpush_subscriptions WHERE user_id = $1 AND endpoint = $2`

	result, err := r.db.Exec(ctx, query, userID, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *PushSubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]push.Subscription, error) {
	query := `
		SELECT id, user_id, endpoint, p256dh, auth, created_at
		FROM webpush_subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []push.Subscription{}
	for rows.Next() {
		var s push.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256DH, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}
