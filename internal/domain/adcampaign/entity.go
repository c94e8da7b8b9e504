// internal/domain/adcampaign/entity.go
package adcampaign

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

type Placement string

const (
	PlacementFeed    Placement = "feed"
	PlacementPremium Placement = "premium"
	PlacementBoth    Placement = "both"
)

func (p Placement) Valid() bool {
	switch p {
	case PlacementFeed, PlacementPremium, PlacementBoth:
		return true
	}
	return false
}

// Budget policy floors, in currency units.
const (
	MinTotalBudget = 50.0
	MinDailyBudget = 5.0

	MaxTitleLen        = 100
	MaxCreativeTextLen = 500
)

// transitions is the single source of truth for the campaign lifecycle.
// pending -> active/rejected and -> completed are driven by the external
// review/delivery process; operators may only toggle active <-> paused.
var transitions = map[Status][]Status{
	StatusDraft:   {StatusPending},
	StatusPending: {StatusActive, StatusRejected},
	StatusActive:  {StatusPaused, StatusCompleted},
	StatusPaused:  {StatusActive, StatusCompleted},
}

// CanTransition reports whether from -> to is a documented lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing edges.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// Creative is the ad payload shown to viewers.
type Creative struct {
	ImageURL     string `json:"image_url" db:"creative_image"`
	Text         string `json:"text" db:"creative_text"`
	CallToAction string `json:"call_to_action" db:"call_to_action"`
}

// Targeting describes who should see a campaign.
type Targeting struct {
	Locations pq.StringArray `json:"locations" db:"locations"`
	AgeMin    int            `json:"age_min" db:"age_min"`
	AgeMax    int            `json:"age_max" db:"age_max"`
	Interests pq.StringArray `json:"interests" db:"interests"`
	Devices   pq.StringArray `json:"devices" db:"devices"`
}

// Metrics are accumulated by the ad delivery backend. They are read-only in
// this API and monotonically non-decreasing.
type Metrics struct {
	Impressions int64   `json:"impressions" db:"impressions"`
	Clicks      int64   `json:"clicks" db:"clicks"`
	Leads       int64   `json:"leads" db:"leads"`
	Spent       float64 `json:"spent" db:"spent"`
}

type AdCampaign struct {
	ID         int64  `json:"id" db:"id"`
	RealtorID  int64  `json:"realtor_id" db:"realtor_id"`
	PropertyID int64  `json:"property_id" db:"property_id"`
	Title      string `json:"title" db:"title"`
	Status     Status `json:"status" db:"status"`

	TotalBudget float64      `json:"total_budget" db:"total_budget"`
	DailyBudget float64      `json:"daily_budget" db:"daily_budget"`
	StartDate   time.Time    `json:"start_date" db:"start_date"`
	EndDate     sql.NullTime `json:"end_date,omitempty" db:"end_date"`
	Placement   Placement    `json:"placement" db:"placement"`

	Creative  Creative  `json:"creative"`
	Targeting Targeting `json:"targeting"`
	Metrics   Metrics   `json:"metrics"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CTR returns the campaign click-through rate in percent, 0 when the
// campaign has no impressions yet.
func (c *AdCampaign) CTR() float64 {
	if c.Metrics.Impressions == 0 {
		return 0
	}
	return float64(c.Metrics.Clicks) / float64(c.Metrics.Impressions) * 100
}

// CPL returns cost per lead, 0 when the campaign has no leads yet.
func (c *AdCampaign) CPL() float64 {
	if c.Metrics.Leads == 0 {
		return 0
	}
	return c.Metrics.Spent / float64(c.Metrics.Leads)
}
