// internal/repository/postgres/saved_search_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"homescout-service/internal/domain/savedsearch"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SavedSearchRepository struct {
	db *pgxpool.Pool
}

func NewSavedSearchRepository(db *pgxpool.Pool) *SavedSearchRepository {
	return &SavedSearchRepository{db: db}
}

func (r *SavedSearchRepository) Create(ctx context.Context, s *savedsearch.SavedSearch) error {
	filtersJSON, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}

	query := `
		INSERT INTO saved_searches (user_id, name, filters)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query, s.UserID, s.Name, filtersJSON).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create saved search: %w", err)
	}

	return nil
}

func (r *SavedSearchRepository) ListByUser(ctx context.Context, userID int64) ([]savedsearch.SavedSearch, error) {
	query := `
		SELECT id, user_id, name, filters, created_at
		FROM saved_searches
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}
	defer rows.Close()

	searches := []savedsearch.SavedSearch{}
	for rows.Next() {
		var s savedsearch.SavedSearch
		var filtersJSON []byte

		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &filtersJSON, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved search: %w", err)
		}

		if len(filtersJSON) > 0 {
			if err := json.Unmarshal(filtersJSON, &s.Filters); err != nil {
				return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
			}
		}

		searches = append(searches, s)
	}

	return searches, rows.Err()
}

func (r *SavedSearchRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM saved_searches WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete saved search: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
