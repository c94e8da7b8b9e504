// internal/domain/lead/entity.go
package lead

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusClosed    Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusClosed:
		return true
	}
	return false
}

type Lead struct {
	ID         int64         `json:"id" db:"id"`
	CampaignID sql.NullInt64 `json:"campaign_id,omitempty" db:"campaign_id"`
	PropertyID int64         `json:"property_id" db:"property_id"`
	Name       string        `json:"name" db:"name"`
	Phone      string        `json:"phone" db:"phone"`
	Email      string        `json:"email" db:"email"`
	Message    string        `json:"message" db:"message"`
	Status     Status        `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}
