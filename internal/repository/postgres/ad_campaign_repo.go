// internal/repository/postgres/ad_campaign_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homescout-service/internal/domain/adcampaign"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdCampaignRepository struct {
	db *pgxpool.Pool
}

func NewAdCampaignRepository(db *pgxpool.Pool) *AdCampaignRepository {
	return &AdCampaignRepository{db: db}
}

const campaignColumns = `id, realtor_id, property_id, title, status,
	total_budget, daily_budget, start_date, end_date, placement,
	creative_image, creative_text, call_to_action,
	locations, age_min, age_max, interests, devices,
	impressions, clicks, leads, spent,
	created_at, updated_at`

func scanCampaign(row pgx.Row) (*adcampaign.AdCampaign, error) {
	var c adcampaign.AdCampaign
	err := row.Scan(
		&c.ID, &c.RealtorID, &c.PropertyID, &c.Title, &c.Status,
		&c.TotalBudget, &c.DailyBudget, &c.StartDate, &c.EndDate, &c.Placement,
		&c.Creative.ImageURL, &c.Creative.Text, &c.Creative.CallToAction,
		&c.Targeting.Locations, &c.Targeting.AgeMin, &c.Targeting.AgeMax,
		&c.Targeting.Interests, &c.Targeting.Devices,
		&c.Metrics.Impressions, &c.Metrics.Clicks, &c.Metrics.Leads, &c.Metrics.Spent,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AdCampaignRepository) Create(ctx context.Context, c *adcampaign.AdCampaign) error {
	query := `
		INSERT INTO ad_campaigns (
			realtor_id, property_id, title, status,
			total_budget, daily_budget, start_date, end_date, placement,
			creative_image, creative_text, call_to_action,
			locations, age_min, age_max, interests, devices
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.RealtorID, c.PropertyID, c.Title, c.Status,
		c.TotalBudget, c.DailyBudget, c.StartDate, c.EndDate, c.Placement,
		c.Creative.ImageURL, c.Creative.Text, c.Creative.CallToAction,
		c.Targeting.Locations, c.Targeting.AgeMin, c.Targeting.AgeMax,
		c.Targeting.Interests, c.Targeting.Devices,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *AdCampaignRepository) FindByID(ctx context.Context, id int64) (*adcampaign.AdCampaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM ad_campaigns WHERE id = $1`, campaignColumns)

	c, err := scanCampaign(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	return c, nil
}

// ListByRealtor fetches the whole campaign collection for one realtor.
// Status and text filtering happen in memory at the service layer so board
// stats always cover the full set.
func (r *AdCampaignRepository) ListByRealtor(ctx context.Context, realtorID int64) ([]adcampaign.AdCampaign, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM ad_campaigns
		WHERE realtor_id = $1
		ORDER BY created_at DESC
	`, campaignColumns)

	rows, err := r.db.Query(ctx, query, realtorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []adcampaign.AdCampaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, *c)
	}

	return campaigns, rows.Err()
}

func (r *AdCampaignRepository) UpdateStatus(ctx context.Context, id int64, status adcampaign.Status) error {
	query := `UPDATE ad_campaigns SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update campaign status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *AdCampaignRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ad_campaigns WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
