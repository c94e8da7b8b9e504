// internal/domain/salesrequest/entity.go
package salesrequest

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusInvoiceIssued  Status = "invoice_issued"
	StatusPaymentPending Status = "payment_pending"
	StatusPaid           Status = "paid"
	StatusCancelled      Status = "cancelled"
)

// Columns is the board order of the Love&Pay Kanban.
var Columns = []Status{
	StatusPending,
	StatusInvoiceIssued,
	StatusPaymentPending,
	StatusPaid,
	StatusCancelled,
}

// next is the canonical forward-only pipeline. Cancellation is modelled
// separately: it is reachable from every non-terminal status.
var next = map[Status]Status{
	StatusPending:        StatusInvoiceIssued,
	StatusInvoiceIssued:  StatusPaymentPending,
	StatusPaymentPending: StatusPaid,
}

// CanTransition reports whether from -> to is allowed. The pipeline only
// moves forward one step at a time; paid and cancelled are terminal.
func CanTransition(from, to Status) bool {
	if to == StatusCancelled {
		return !IsTerminal(from)
	}
	return next[from] == to
}

// Next returns the single forward step from a status, or "" when there is
// none.
func Next(from Status) Status {
	return next[from]
}

// IsTerminal reports whether a status ends the pipeline.
func IsTerminal(s Status) bool {
	return s == StatusPaid || s == StatusCancelled
}

// slaThresholds is the per-status time-in-pipeline budget. Terminal
// statuses carry no threshold and are never flagged.
var slaThresholds = map[Status]time.Duration{
	StatusPending:        24 * time.Hour,
	StatusInvoiceIssued:  48 * time.Hour,
	StatusPaymentPending: 72 * time.Hour,
}

type SalesRequest struct {
	ID          int64         `json:"id" db:"id"`
	Reference   string        `json:"reference" db:"reference"`
	ClientName  string        `json:"client_name" db:"client_name"`
	ClientPhone string        `json:"client_phone" db:"client_phone"`
	PropertyID  sql.NullInt64 `json:"property_id,omitempty" db:"property_id"`
	Amount      float64       `json:"amount" db:"amount"`
	Status      Status        `json:"status" db:"status"`
	AssigneeID  sql.NullInt64 `json:"assignee_id,omitempty" db:"assignee_id"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// SLABreached reports whether the request has sat in the pipeline longer
// than its status threshold at the given instant. It is a pure predicate
// re-evaluated on render, not a scheduled alert.
func (r *SalesRequest) SLABreached(now time.Time) bool {
	threshold, ok := slaThresholds[r.Status]
	if !ok {
		return false
	}
	return now.Sub(r.CreatedAt) > threshold
}
