// internal/domain/invoice/entity.go
package invoice

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusIssued    Status = "issued"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

type Invoice struct {
	ID             int64        `json:"id" db:"id"`
	SalesRequestID int64        `json:"sales_request_id" db:"sales_request_id"`
	Number         string       `json:"number" db:"number"`
	Amount         float64      `json:"amount" db:"amount"`
	Status         Status       `json:"status" db:"status"`
	IssuedAt       time.Time    `json:"issued_at" db:"issued_at"`
	DueAt          time.Time    `json:"due_at" db:"due_at"`
	PaidAt         sql.NullTime `json:"paid_at,omitempty" db:"paid_at"`
}
