// internal/repository/postgres/property_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"homescout-service/internal/domain/property"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PropertyRepository struct {
	db *pgxpool.Pool
}

func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, realtor_id, title, description, price, property_type,
	bedrooms, bathrooms, area, address, city, latitude, longitude,
	features, images, primary_image, active, created_at, updated_at`

func scanProperty(row pgx.Row) (*property.Property, error) {
	var p property.Property
	err := row.Scan(
		&p.ID, &p.RealtorID, &p.Title, &p.Description, &p.Price, &p.Type,
		&p.Bedrooms, &p.Bathrooms, &p.Area, &p.Address, &p.City,
		&p.Latitude, &p.Longitude,
		&p.Features, &p.Images, &p.PrimaryImage,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	query := `
		INSERT INTO properties (
			realtor_id, title, description, price, property_type,
			bedrooms, bathrooms, area, address, city, latitude, longitude,
			features, images, primary_image, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.RealtorID, p.Title, p.Description, p.Price, p.Type,
		p.Bedrooms, p.Bathrooms, p.Area, p.Address, p.City, p.Latitude, p.Longitude,
		p.Features, p.Images, p.PrimaryImage, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*property.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)

	p, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	return p, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	query := `
		UPDATE properties
		SET title = $1, description = $2, price = $3, bedrooms = $4,
		    bathrooms = $5, area = $6, address = $7, city = $8,
		    features = $9, images = $10, primary_image = $11, active = $12,
		    updated_at = $13
		WHERE id = $14
	`

	result, err := r.db.Exec(
		ctx, query,
		p.Title, p.Description, p.Price, p.Bedrooms,
		p.Bathrooms, p.Area, p.Address, p.City,
		p.Features, p.Images, p.PrimaryImage, p.Active,
		time.Now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM properties WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *PropertyRepository) ListByRealtor(ctx context.Context, realtorID int64) ([]property.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE realtor_id = $1
		ORDER BY created_at DESC
	`, propertyColumns)

	rows, err := r.db.Query(ctx, query, realtorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := []property.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *p)
	}

	return properties, rows.Err()
}

// Search lists properties matching the optional filters, newest first.
func (r *PropertyRepository) Search(ctx context.Context, filters *property.SearchFilters) ([]property.Property, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.OnlyActive {
		conditions = append(conditions, "active = TRUE")
	}
	if filters.City != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", argPos))
		args = append(args, filters.City)
		argPos++
	}
	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("property_type = $%d", argPos))
		args = append(args, filters.Type)
		argPos++
	}
	if filters.MinPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argPos))
		args = append(args, filters.MinPrice)
		argPos++
	}
	if filters.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argPos))
		args = append(args, filters.MaxPrice)
		argPos++
	}
	if filters.Bedrooms > 0 {
		conditions = append(conditions, fmt.Sprintf("bedrooms >= $%d", argPos))
		args = append(args, filters.Bedrooms)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR address ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM properties
		%s
		ORDER BY created_at DESC
	`, propertyColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	defer rows.Close()

	properties := []property.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *p)
	}

	return properties, rows.Err()
}
