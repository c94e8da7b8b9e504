// internal/repository/postgres/sales_request_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homescout-service/internal/domain/invoice"
	"homescout-service/internal/domain/salesrequest"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SalesRequestRepository struct {
	db *pgxpool.Pool
}

func NewSalesRequestRepository(db *pgxpool.Pool) *SalesRequestRepository {
	return &SalesRequestRepository{db: db}
}

const salesRequestColumns = `id, reference, client_name, client_phone,
	property_id, amount, status, assignee_id, created_at, updated_at`

func scanSalesRequest(row pgx.Row) (*salesrequest.SalesRequest, error) {
	var sr salesrequest.SalesRequest
	err := row.Scan(
		&sr.ID, &sr.Reference, &sr.ClientName, &sr.ClientPhone,
		&sr.PropertyID, &sr.Amount, &sr.Status, &sr.AssigneeID,
		&sr.CreatedAt, &sr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *SalesRequestRepository) Create(ctx context.Context, sr *salesrequest.SalesRequest) error {
	query := `
		INSERT INTO sales_requests (
			reference, client_name, client_phone, property_id, amount, status, assignee_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		sr.Reference, sr.ClientName, sr.ClientPhone, sr.PropertyID,
		sr.Amount, sr.Status, sr.AssigneeID,
	).Scan(&sr.ID, &sr.CreatedAt, &sr.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create sales request: %w", err)
	}

	return nil
}

func (r *SalesRequestRepository) FindByID(ctx context.Context, id int64) (*salesrequest.SalesRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales_requests WHERE id = $1`, salesRequestColumns)

	sr, err := scanSalesRequest(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sales request: %w", err)
	}

	return sr, nil
}

// List fetches all requests, oldest first so column ordering is stable.
func (r *SalesRequestRepository) List(ctx context.Context) ([]salesrequest.SalesRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales_requests ORDER BY created_at ASC`, salesRequestColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales requests: %w", err)
	}
	defer rows.Close()

	requests := []salesrequest.SalesRequest{}
	for rows.Next() {
		sr, err := scanSalesRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales request: %w", err)
		}
		requests = append(requests, *sr)
	}

	return requests, rows.Err()
}

func (r *SalesRequestRepository) UpdateStatus(ctx context.Context, id int64, status salesrequest.Status) error {
	query := `UPDATE sales_requests SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update sales request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// AdvanceWithInvoice flips the status and inserts the invoice in one
// transaction: a request can never sit in invoice_issued without its
// invoice row.
func (r *SalesRequestRepository) AdvanceWithInvoice(ctx context.Context, id int64, status salesrequest.Status, inv *invoice.Invoice) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateStatus := `UPDATE sales_requests SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := tx.Exec(ctx, updateStatus, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update sales request status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	insertInvoice := `
		INSERT INTO invoices (sales_request_id, number, amount, status, issued_at, due_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRow(
		ctx, insertInvoice,
		inv.SalesRequestID, inv.Number, inv.Amount, inv.Status, inv.IssuedAt, inv.DueAt,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return tx.Commit(ctx)
}
