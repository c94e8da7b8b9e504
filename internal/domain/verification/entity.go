// internal/domain/verification/entity.go
package verification

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is a KYC verification request. The decision itself is produced by
// the external provider; this service only tracks the lifecycle.
type Request struct {
	ID         int64          `json:"id" db:"id"`
	UserID     int64          `json:"user_id" db:"user_id"`
	Reference  string         `json:"reference" db:"reference"`
	Documents  pq.StringArray `json:"documents" db:"documents"`
	Status     Status         `json:"status" db:"status"`
	SessionURL string         `json:"session_url" db:"session_url"`
	ReviewedAt sql.NullTime   `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
