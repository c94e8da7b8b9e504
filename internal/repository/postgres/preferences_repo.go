// internal/repository/postgres/preferences_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"homescout-service/internal/domain/preferences"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PreferencesRepository struct {
	db *pgxpool.Pool
}

func NewPreferencesRepository(db *pgxpool.Pool) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Upsert writes the buyer's preferences, replacing any existing row.
func (r *PreferencesRepository) Upsert(ctx context.Context, p *preferences.BuyerPreferences) error {
	query := `
		INSERT INTO buyer_preferences (user_id, min_price, max_price, min_bedrooms, property_types, cities, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id) DO UPDATE SET
			min_price = EXCLUDED.min_price,
			max_price = EXCLUDED.max_price,
			min_bedrooms = EXCLUDED.min_bedrooms,
			property_types = EXCLUDED.property_types,
			cities = EXCLUDED.cities,
			updated_at = now()
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.UserID, p.MinPrice, p.MaxPrice, p.MinBedrooms, p.PropertyTypes, p.Cities,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}

func (r *PreferencesRepository) FindByUser(ctx context.Context, userID int64) (*preferences.BuyerPreferences, error) {
	query := `
		SELECT user_id, min_price, max_price, min_bedrooms, property_types, cities, updated_at
		FROM buyer_preferences
		WHERE user_id = $1
	`

	var p preferences.BuyerPreferences
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.MinPrice, &p.MaxPrice, &p.MinBedrooms, &p.PropertyTypes, &p.Cities, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}

	return &p, nil
}
