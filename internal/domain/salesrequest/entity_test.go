package salesrequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForwardOnlyTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusInvoiceIssued))
	assert.True(t, CanTransition(StatusInvoiceIssued, StatusPaymentPending))
	assert.True(t, CanTransition(StatusPaymentPending, StatusPaid))

	// no skipping, no going back
	assert.False(t, CanTransition(StatusPending, StatusPaymentPending))
	assert.False(t, CanTransition(StatusPending, StatusPaid))
	assert.False(t, CanTransition(StatusInvoiceIssued, StatusPending))
	assert.False(t, CanTransition(StatusPaid, StatusPaymentPending))
}

func TestCancelReachableFromNonTerminalOnly(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusInvoiceIssued, StatusCancelled))
	assert.True(t, CanTransition(StatusPaymentPending, StatusCancelled))

	assert.False(t, CanTransition(StatusPaid, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
}

func TestSLABreach(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	at := func(hoursAgo int) time.Time { return now.Add(-time.Duration(hoursAgo) * time.Hour) }

	cases := []struct {
		name     string
		status   Status
		created  time.Time
		breached bool
	}{
		{"pending 25h", StatusPending, at(25), true},
		{"pending 23h", StatusPending, at(23), false},
		{"invoice 49h", StatusInvoiceIssued, at(49), true},
		{"invoice 47h", StatusInvoiceIssued, at(47), false},
		{"payment 73h", StatusPaymentPending, at(73), true},
		{"payment 71h", StatusPaymentPending, at(71), false},
		{"paid never flagged", StatusPaid, at(1000), false},
		{"cancelled never flagged", StatusCancelled, at(1000), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &SalesRequest{Status: tc.status, CreatedAt: tc.created}
			assert.Equal(t, tc.breached, r.SLABreached(now))
		})
	}
}
