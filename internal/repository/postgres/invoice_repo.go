// internal/repository/postgres/invoice_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homescout-service/internal/domain/invoice"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Invoice rows are only ever inserted together with the owning request's
// status flip; see SalesRequestRepository.AdvanceWithInvoice.
func (r *InvoiceRepository) FindBySalesRequest(ctx context.Context, salesRequestID int64) (*invoice.Invoice, error) {
	query := `
		SELECT id, sales_request_id, number, amount, status, issued_at, due_at, paid_at
		FROM invoices
		WHERE sales_request_id = $1
		ORDER BY issued_at DESC
		LIMIT 1
	`

	var inv invoice.Invoice
	err := r.db.QueryRow(ctx, query, salesRequestID).Scan(
		&inv.ID, &inv.SalesRequestID, &inv.Number, &inv.Amount, &inv.Status,
		&inv.IssuedAt, &inv.DueAt, &inv.PaidAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	return &inv, nil
}

func (r *InvoiceRepository) MarkPaid(ctx context.Context, salesRequestID int64, paidAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $1, paid_at = $2
		WHERE sales_request_id = $3 AND status = $4
	`

	result, err := r.db.Exec(ctx, query, invoice.StatusPaid, paidAt, salesRequestID, invoice.StatusIssued)
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *InvoiceRepository) Cancel(ctx context.Context, salesRequestID int64) error {
	query := `
		UPDATE invoices
		SET status = $1
		WHERE sales_request_id = $2 AND status = $3
	`

	_, err := r.db.Exec(ctx, query, invoice.StatusCancelled, salesRequestID, invoice.StatusIssued)
	if err != nil {
		return fmt.Errorf("failed to cancel invoice: %w", err)
	}

	return nil
}
