// internal/domain/showing/dto.go
package showing

import "time"

type CreateShowingRequest struct {
	PropertyID  int64     `json:"property_id" binding:"required"`
	ClientName  string    `json:"client_name" binding:"required,max=200"`
	ClientEmail string    `json:"client_email" binding:"omitempty,email"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"omitempty,min=5,max=480"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}
