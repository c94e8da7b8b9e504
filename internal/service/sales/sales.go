// internal/service/sales/sales.go
package sales

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"homescout-service/internal/domain/invoice"
	"homescout-service/internal/domain/salesrequest"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const invoiceDueDays = 7

// SalesRequestStore is the persistence surface behind the pipeline,
// implemented by postgres.SalesRequestRepository.
type SalesRequestStore interface {
	Create(ctx context.Context, sr *salesrequest.SalesRequest) error
	FindByID(ctx context.Context, id int64) (*salesrequest.SalesRequest, error)
	List(ctx context.Context) ([]salesrequest.SalesRequest, error)
	UpdateStatus(ctx context.Context, id int64, status salesrequest.Status) error
	AdvanceWithInvoice(ctx context.Context, id int64, status salesrequest.Status, inv *invoice.Invoice) error
}

// InvoiceStore is implemented by postgres.InvoiceRepository.
type InvoiceStore interface {
	FindBySalesRequest(ctx context.Context, salesRequestID int64) (*invoice.Invoice, error)
	MarkPaid(ctx context.Context, salesRequestID int64, paidAt time.Time) error
	Cancel(ctx context.Context, salesRequestID int64) error
}

// SalesService drives the Love&Pay pipeline board.
type SalesService struct {
	salesRepo   SalesRequestStore
	invoiceRepo InvoiceStore
	logger      *zap.Logger
}

func NewSalesService(
	salesRepo SalesRequestStore,
	invoiceRepo InvoiceStore,
	logger *zap.Logger,
) *SalesService {
	return &SalesService{
		salesRepo:   salesRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (s *SalesService) Create(ctx context.Context, req *salesrequest.CreateSalesRequest) (*salesrequest.SalesRequest, error) {
	sr := &salesrequest.SalesRequest{
		Reference:   fmt.Sprintf("SR-%s", ulid.MustNew(ulid.Now(), rand.Reader).String()),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Amount:      req.Amount,
		Status:      salesrequest.StatusPending,
	}
	if req.PropertyID != nil {
		sr.PropertyID = sql.NullInt64{Int64: *req.PropertyID, Valid: true}
	}
	if req.AssigneeID != nil {
		sr.AssigneeID = sql.NullInt64{Int64: *req.AssigneeID, Valid: true}
	}

	if err := s.salesRepo.Create(ctx, sr); err != nil {
		s.logger.Error("failed to create sales request", zap.Error(err))
		return nil, err
	}

	s.logger.Info("sales request created",
		zap.Int64("sales_request_id", sr.ID),
		zap.String("reference", sr.Reference),
	)

	return sr, nil
}

func (s *SalesService) Get(ctx context.Context, id int64) (*salesrequest.SalesRequest, error) {
	return s.salesRepo.FindByID(ctx, id)
}

// Board groups every request into the five Kanban columns and evaluates the
// SLA flag against the given instant.
func (s *SalesService) Board(ctx context.Context, now time.Time) (*salesrequest.Board, error) {
	requests, err := s.salesRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildBoard(requests, now), nil
}

// BuildBoard is the pure grouping step behind Board. Every column is present
// in the result even when empty.
func BuildBoard(requests []salesrequest.SalesRequest, now time.Time) *salesrequest.Board {
	columns := make(map[salesrequest.Status][]salesrequest.BoardRow, len(salesrequest.Columns))
	for _, col := range salesrequest.Columns {
		columns[col] = []salesrequest.BoardRow{}
	}

	for _, sr := range requests {
		col, ok := columns[sr.Status]
		if !ok {
			continue
		}
		columns[sr.Status] = append(col, salesrequest.BoardRow{
			SalesRequest: sr,
			SLABreach:    sr.SLABreached(now),
		})
	}

	return &salesrequest.Board{Columns: columns, Total: len(requests)}
}

// Advance moves a request one step forward in the pipeline. Issuing an
// invoice and settling it are side effects of the relevant transitions.
func (s *SalesService) Advance(ctx context.Context, id int64) (*salesrequest.SalesRequest, error) {
	sr, err := s.salesRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	to := salesrequest.Next(sr.Status)
	if to == "" {
		return nil, xerrors.ErrInvalidStatus
	}

	switch to {
	case salesrequest.StatusInvoiceIssued:
		// Status flip and invoice row are atomic: a failed insert rolls
		// the request back to pending.
		if err := s.salesRepo.AdvanceWithInvoice(ctx, id, to, buildInvoice(sr)); err != nil {
			s.logger.Error("failed to issue invoice",
				zap.Int64("sales_request_id", id), zap.Error(err))
			return nil, err
		}
	case salesrequest.StatusPaid:
		if err := s.salesRepo.UpdateStatus(ctx, id, to); err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.MarkPaid(ctx, id, time.Now()); err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to settle invoice",
				zap.Int64("sales_request_id", id), zap.Error(err))
		}
	default:
		if err := s.salesRepo.UpdateStatus(ctx, id, to); err != nil {
			return nil, err
		}
	}

	s.logger.Info("sales request advanced",
		zap.Int64("sales_request_id", id),
		zap.String("from", string(sr.Status)),
		zap.String("to", string(to)),
	)

	sr.Status = to
	return sr, nil
}

// Cancel aborts a request from any non-terminal column and voids an open
// invoice.
func (s *SalesService) Cancel(ctx context.Context, id int64) (*salesrequest.SalesRequest, error) {
	sr, err := s.salesRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !salesrequest.CanTransition(sr.Status, salesrequest.StatusCancelled) {
		return nil, xerrors.ErrInvalidStatus
	}

	if err := s.salesRepo.UpdateStatus(ctx, id, salesrequest.StatusCancelled); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Cancel(ctx, id); err != nil {
		s.logger.Error("failed to cancel invoice",
			zap.Int64("sales_request_id", id), zap.Error(err))
	}

	s.logger.Info("sales request cancelled", zap.Int64("sales_request_id", id))

	sr.Status = salesrequest.StatusCancelled
	return sr, nil
}

func (s *SalesService) Invoice(ctx context.Context, salesRequestID int64) (*invoice.Invoice, error) {
	return s.invoiceRepo.FindBySalesRequest(ctx, salesRequestID)
}

func buildInvoice(sr *salesrequest.SalesRequest) *invoice.Invoice {
	now := time.Now()
	return &invoice.Invoice{
		SalesRequestID: sr.ID,
		Number:         fmt.Sprintf("INV-%s", ulid.MustNew(ulid.Now(), rand.Reader).String()),
		Amount:         sr.Amount,
		Status:         invoice.StatusIssued,
		IssuedAt:       now,
		DueAt:          now.AddDate(0, 0, invoiceDueDays),
	}
}
