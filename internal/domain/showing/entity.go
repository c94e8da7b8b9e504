// internal/domain/showing/entity.go
package showing

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Showing struct {
	ID          int64     `json:"id" db:"id"`
	PropertyID  int64     `json:"property_id" db:"property_id"`
	ClientName  string    `json:"client_name" db:"client_name"`
	ClientEmail string    `json:"client_email" db:"client_email"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	DurationMin int       `json:"duration_min" db:"duration_min"`
	Location    string    `json:"location" db:"location"`
	Notes       string    `json:"notes" db:"notes"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
