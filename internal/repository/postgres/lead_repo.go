// internal/repository/postgres/lead_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"homescout-service/internal/domain/lead"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = `id, campaign_id, property_id, name, phone, email, message, status, created_at`

func scanLead(row pgx.Row) (*lead.Lead, error) {
	var l lead.Lead
	err := row.Scan(
		&l.ID, &l.CampaignID, &l.PropertyID, &l.Name, &l.Phone,
		&l.Email, &l.Message, &l.Status, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (campaign_id, property_id, name, phone, email, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		l.CampaignID, l.PropertyID, l.Name, l.Phone, l.Email, l.Message, l.Status,
	).Scan(&l.ID, &l.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*lead.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)

	l, err := scanLead(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}

	return l, nil
}

// ListByRealtor lists leads for all properties owned by a realtor.
func (r *LeadRepository) ListByRealtor(ctx context.Context, realtorID int64) ([]lead.Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE property_id IN (SELECT id FROM properties WHERE realtor_id = $1)
		ORDER BY created_at DESC
	`, leadColumns)

	rows, err := r.db.Query(ctx, query, realtorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []lead.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *l)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]lead.Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`, leadColumns)

	rows, err := r.db.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []lead.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *l)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status lead.Status) error {
	query := `UPDATE leads SET status = $1 WHERE id = $2`

	result, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
