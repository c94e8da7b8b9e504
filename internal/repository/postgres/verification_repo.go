// internal/repository/postgres/verification_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homescout-service/internal/domain/verification"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VerificationRepository struct {
	db *pgxpool.Pool
}

func NewVerificationRepository(db *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{db: db}
}

const verificationColumns = `id, user_id, reference, documents, status,
	session_url, reviewed_at, created_at`

func scanVerification(row pgx.Row) (*verification.Request, error) {
	var v verification.Request
	err := row.Scan(
		&v.ID, &v.UserID, &v.Reference, &v.Documents, &v.Status,
		&v.SessionURL, &v.ReviewedAt, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepository) Create(ctx context.Context, v *verification.Request) error {
	query := `
		INSERT INTO verification_requests (user_id, reference, documents, status, session_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.UserID, v.Reference, v.Documents, v.Status, v.SessionURL,
	).Scan(&v.ID, &v.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create verification request: %w", err)
	}

	return nil
}

func (r *VerificationRepository) FindByReference(ctx context.Context, reference string) (*verification.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM verification_requests WHERE reference = $1`, verificationColumns)

	v, err := scanVerification(r.db.QueryRow(ctx, query, reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find verification request: %w", err)
	}

	return v, nil
}

// FindLatestByUser returns the user's most recent verification request.
func (r *VerificationRepository) FindLatestByUser(ctx context.Context, userID int64) (*verification.Request, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM verification_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, verificationColumns)

	v, err := scanVerification(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find verification request: %w", err)
	}

	return v, nil
}

// Complete records the provider's decision. Only pending requests can be
// completed.
func (r *VerificationRepository) Complete(ctx context.Context, reference string, status verification.Status, reviewedAt time.Time) error {
	query := `
		UPDATE verification_requests
		SET status = $1, reviewed_at = $2
		WHERE reference = $3 AND status = $4
	`

	result, err := r.db.Exec(ctx, query, status, reviewedAt, reference, verification.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to complete verification request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
