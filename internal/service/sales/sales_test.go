// internal/service/sales/sales_test.go
package sales

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"homescout-service/internal/domain/invoice"
	"homescout-service/internal/domain/salesrequest"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildBoardGroupsByStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	requests := []salesrequest.SalesRequest{
		{ID: 1, Status: salesrequest.StatusPending, CreatedAt: now.Add(-time.Hour)},
		{ID: 2, Status: salesrequest.StatusPending, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 3, Status: salesrequest.StatusInvoiceIssued, CreatedAt: now.Add(-time.Hour)},
		{ID: 4, Status: salesrequest.StatusPaid, CreatedAt: now.Add(-100 * time.Hour)},
	}

	board := BuildBoard(requests, now)

	assert.Equal(t, 4, board.Total)
	assert.Len(t, board.Columns[salesrequest.StatusPending], 2)
	assert.Len(t, board.Columns[salesrequest.StatusInvoiceIssued], 1)
	assert.Len(t, board.Columns[salesrequest.StatusPaid], 1)
	assert.Empty(t, board.Columns[salesrequest.StatusPaymentPending])
	assert.Empty(t, board.Columns[salesrequest.StatusCancelled])
}

func TestBuildBoardAllColumnsPresent(t *testing.T) {
	board := BuildBoard(nil, time.Now())

	assert.Zero(t, board.Total)
	require.Len(t, board.Columns, len(salesrequest.Columns))
	for _, col := range salesrequest.Columns {
		rows, ok := board.Columns[col]
		assert.True(t, ok, "column %s missing", col)
		assert.NotNil(t, rows)
	}
}

func TestBuildBoardSLAFlags(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	requests := []salesrequest.SalesRequest{
		// pending threshold is 24h
		{ID: 1, Status: salesrequest.StatusPending, CreatedAt: now.Add(-25 * time.Hour)},
		{ID: 2, Status: salesrequest.StatusPending, CreatedAt: now.Add(-23 * time.Hour)},
		// paid is terminal, never flagged regardless of age
		{ID: 3, Status: salesrequest.StatusPaid, CreatedAt: now.Add(-500 * time.Hour)},
	}

	board := BuildBoard(requests, now)

	pending := board.Columns[salesrequest.StatusPending]
	require.Len(t, pending, 2)
	assert.True(t, pending[0].SLABreach)
	assert.False(t, pending[1].SLABreach)

	paid := board.Columns[salesrequest.StatusPaid]
	require.Len(t, paid, 1)
	assert.False(t, paid[0].SLABreach)
}

func TestBuildBoardPreservesOrder(t *testing.T) {
	now := time.Now()
	requests := []salesrequest.SalesRequest{
		{ID: 10, Status: salesrequest.StatusPending, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: 11, Status: salesrequest.StatusPending, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 12, Status: salesrequest.StatusPending, CreatedAt: now.Add(-1 * time.Hour)},
	}

	board := BuildBoard(requests, now)

	pending := board.Columns[salesrequest.StatusPending]
	require.Len(t, pending, 3)
	assert.Equal(t, int64(10), pending[0].ID)
	assert.Equal(t, int64(11), pending[1].ID)
	assert.Equal(t, int64(12), pending[2].ID)
}

// ---- in-memory stores for service-level tests ----

type fakeSalesStore struct {
	byID       map[int64]*salesrequest.SalesRequest
	invoices   map[int64]*invoice.Invoice
	advanceErr error
}

func newFakeSalesStore() *fakeSalesStore {
	return &fakeSalesStore{
		byID:     map[int64]*salesrequest.SalesRequest{},
		invoices: map[int64]*invoice.Invoice{},
	}
}

func (f *fakeSalesStore) Create(_ context.Context, sr *salesrequest.SalesRequest) error {
	sr.ID = int64(len(f.byID) + 1)
	stored := *sr
	f.byID[sr.ID] = &stored
	return nil
}

func (f *fakeSalesStore) FindByID(_ context.Context, id int64) (*salesrequest.SalesRequest, error) {
	sr, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *sr
	return &copied, nil
}

func (f *fakeSalesStore) List(_ context.Context) ([]salesrequest.SalesRequest, error) {
	out := []salesrequest.SalesRequest{}
	for _, sr := range f.byID {
		out = append(out, *sr)
	}
	return out, nil
}

func (f *fakeSalesStore) UpdateStatus(_ context.Context, id int64, status salesrequest.Status) error {
	sr, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	sr.Status = status
	return nil
}

// AdvanceWithInvoice mirrors the repository contract: all or nothing.
func (f *fakeSalesStore) AdvanceWithInvoice(_ context.Context, id int64, status salesrequest.Status, inv *invoice.Invoice) error {
	if f.advanceErr != nil {
		return f.advanceErr
	}
	sr, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	sr.Status = status
	f.invoices[id] = inv
	return nil
}

type fakeInvoiceStore struct {
	paid      []int64
	cancelled []int64
}

func (f *fakeInvoiceStore) FindBySalesRequest(_ context.Context, _ int64) (*invoice.Invoice, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeInvoiceStore) MarkPaid(_ context.Context, salesRequestID int64, _ time.Time) error {
	f.paid = append(f.paid, salesRequestID)
	return nil
}

func (f *fakeInvoiceStore) Cancel(_ context.Context, salesRequestID int64) error {
	f.cancelled = append(f.cancelled, salesRequestID)
	return nil
}

func TestAdvanceIssuesInvoiceWithStatusFlip(t *testing.T) {
	store := newFakeSalesStore()
	store.byID[1] = &salesrequest.SalesRequest{ID: 1, Status: salesrequest.StatusPending, Amount: 2500}
	svc := NewSalesService(store, &fakeInvoiceStore{}, zap.NewNop())

	sr, err := svc.Advance(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, salesrequest.StatusInvoiceIssued, sr.Status)
	assert.Equal(t, salesrequest.StatusInvoiceIssued, store.byID[1].Status)

	inv := store.invoices[1]
	require.NotNil(t, inv, "advancing to invoice_issued must carry an invoice row")
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
	assert.InDelta(t, 2500.0, inv.Amount, 0.001)
	assert.Equal(t, invoice.StatusIssued, inv.Status)
	assert.Equal(t, inv.IssuedAt.AddDate(0, 0, invoiceDueDays), inv.DueAt)
}

// A failed invoice insert must surface as an error with the request still
// in its previous column, not as a silently logged half-advance.
func TestAdvanceInvoiceFailureLeavesStatusUntouched(t *testing.T) {
	store := newFakeSalesStore()
	store.byID[1] = &salesrequest.SalesRequest{ID: 1, Status: salesrequest.StatusPending, Amount: 100}
	store.advanceErr = errors.New("insert failed")
	svc := NewSalesService(store, &fakeInvoiceStore{}, zap.NewNop())

	_, err := svc.Advance(context.Background(), 1)

	assert.Error(t, err)
	assert.Equal(t, salesrequest.StatusPending, store.byID[1].Status)
	assert.Empty(t, store.invoices)
}

func TestAdvanceToPaidSettlesInvoice(t *testing.T) {
	store := newFakeSalesStore()
	store.byID[1] = &salesrequest.SalesRequest{ID: 1, Status: salesrequest.StatusPaymentPending}
	invoices := &fakeInvoiceStore{}
	svc := NewSalesService(store, invoices, zap.NewNop())

	sr, err := svc.Advance(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, salesrequest.StatusPaid, sr.Status)
	assert.Equal(t, []int64{1}, invoices.paid)
}

func TestAdvanceFromTerminalRejected(t *testing.T) {
	store := newFakeSalesStore()
	store.byID[1] = &salesrequest.SalesRequest{ID: 1, Status: salesrequest.StatusPaid}
	svc := NewSalesService(store, &fakeInvoiceStore{}, zap.NewNop())

	_, err := svc.Advance(context.Background(), 1)

	assert.ErrorIs(t, err, xerrors.ErrInvalidStatus)
	assert.Equal(t, salesrequest.StatusPaid, store.byID[1].Status)
}
