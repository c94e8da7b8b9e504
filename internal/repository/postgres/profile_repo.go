// internal/repository/postgres/profile_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homescout-service/internal/domain/profile"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (email, password_hash, full_name, phone, role, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.Email, p.PasswordHash, p.FullName, p.Phone, p.Role, p.Verified,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id int64) (*profile.Profile, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, role, verified,
		       created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p profile.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Phone, &p.Role,
		&p.Verified, &p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &p, nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, role, verified,
		       created_at, updated_at
		FROM profiles
		WHERE email = $1
	`

	var p profile.Profile
	err := r.db.QueryRow(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Phone, &p.Role,
		&p.Verified, &p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &p, nil
}

func (r *ProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, phone = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, p.FullName, p.Phone, time.Now(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SetVerified flips the KYC flag once a verification decision lands.
func (r *ProfileRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	query := `UPDATE profiles SET verified = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, verified, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set verified: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
