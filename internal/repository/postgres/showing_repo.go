// internal/repository/postgres/showing_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"homescout-service/internal/domain/showing"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ShowingRepository struct {
	db *pgxpool.Pool
}

func NewShowingRepository(db *pgxpool.Pool) *ShowingRepository {
	return &ShowingRepository{db: db}
}

const showingColumns = `id, property_id, client_name, client_email,
	scheduled_at, duration_min, location, notes, status, created_at`

func scanShowing(row pgx.Row) (*showing.Showing, error) {
	var s showing.Showing
	err := row.Scan(
		&s.ID, &s.PropertyID, &s.ClientName, &s.ClientEmail,
		&s.ScheduledAt, &s.DurationMin, &s.Location, &s.Notes,
		&s.Status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShowingRepository) Create(ctx context.Context, s *showing.Showing) error {
	query := `
		INSERT INTO showings (
			property_id, client_name, client_email, scheduled_at,
			duration_min, location, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		s.PropertyID, s.ClientName, s.ClientEmail, s.ScheduledAt,
		s.DurationMin, s.Location, s.Notes, s.Status,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create showing: %w", err)
	}

	return nil
}

func (r *ShowingRepository) FindByID(ctx context.Context, id int64) (*showing.Showing, error) {
	query := fmt.Sprintf(`SELECT %s FROM showings WHERE id = $1`, showingColumns)

	s, err := scanShowing(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find showing: %w", err)
	}

	return s, nil
}

func (r *ShowingRepository) ListByProperty(ctx context.Context, propertyID int64) ([]showing.Showing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM showings
		WHERE property_id = $1
		ORDER BY scheduled_at ASC
	`, showingColumns)

	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list showings: %w", err)
	}
	defer rows.Close()

	showings := []showing.Showing{}
	for rows.Next() {
		s, err := scanShowing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan showing: %w", err)
		}
		showings = append(showings, *s)
	}

	return showings, rows.Err()
}

// ListByRealtor lists showings across all of a realtor's properties, soonest
// first.
func (r *ShowingRepository) ListByRealtor(ctx context.Context, realtorID int64) ([]showing.Showing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM showings
		WHERE property_id IN (SELECT id FROM properties WHERE realtor_id = $1)
		ORDER BY scheduled_at ASC
	`, showingColumns)

	rows, err := r.db.Query(ctx, query, realtorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list showings: %w", err)
	}
	defer rows.Close()

	showings := []showing.Showing{}
	for rows.Next() {
		s, err := scanShowing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan showing: %w", err)
		}
		showings = append(showings, *s)
	}

	return showings, rows.Err()
}

func (r *ShowingRepository) UpdateStatus(ctx context.Context, id int64, status showing.Status) error {
	query := `UPDATE showings SET status = $1 WHERE id = $2`

	result, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update showing status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
