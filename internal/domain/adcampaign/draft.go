// internal/domain/adcampaign/draft.go
package adcampaign

import (
	"fmt"
	"math"
	"time"

	"github.com/lib/pq"

	"homescout-service/internal/domain/property"
)

// Draft workflow stages. The flow is linear: no branching, no skipping.
const (
	StageSelectProperty = 1
	StageCreative       = 2
	StageBudgetSchedule = 3
	StageReview         = 4
)

// reachPerBudgetDay is the fixed multiplier behind the estimated-reach
// heuristic shown to the operator. It is informational only.
const reachPerBudgetDay = 7500

const draftDateLayout = "2006-01-02"

// Draft accumulates a campaign configuration across the four creation
// stages. It is never persisted to the campaigns table; it lives in the
// creation session until submitted or abandoned.
type Draft struct {
	Stage int `json:"stage"`

	PropertyID int64  `json:"property_id"`
	Title      string `json:"title"`

	CreativeImage string `json:"creative_image"`
	CreativeText  string `json:"creative_text"`
	CallToAction  string `json:"call_to_action"`

	TotalBudget float64 `json:"total_budget"`
	DailyBudget float64 `json:"daily_budget"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     string  `json:"end_date,omitempty"`
	Placement   string  `json:"placement"`

	Locations []string `json:"locations,omitempty"`
	AgeMin    int      `json:"age_min"`
	AgeMax    int      `json:"age_max"`
	Interests []string `json:"interests,omitempty"`
	Devices   []string `json:"devices,omitempty"`

	// Errors maps field name to validation message for the stage that last
	// failed to advance.
	Errors map[string]string `json:"errors,omitempty"`
}

func NewDraft() *Draft {
	return &Draft{
		Stage:     StageSelectProperty,
		Placement: string(PlacementFeed),
		AgeMin:    18,
		AgeMax:    65,
	}
}

// ApplyProperty records the selected property and derives title, creative
// text and staged image from it. This is a one-time derivation, not a
// binding: selecting another property overwrites the derived fields
// entirely, and later edits to the property do not propagate.
func (d *Draft) ApplyProperty(p *property.Property) {
	d.PropertyID = p.ID
	d.Title = fmt.Sprintf("%s - %s", p.Title, p.Location())
	d.CreativeText = p.Description
	d.CreativeImage = p.CoverImage()
}

// ValidateStage runs the rule set scoped to a single stage and returns a
// field -> message map, empty when all rules hold.
func (d *Draft) ValidateStage(stage int) map[string]string {
	errs := make(map[string]string)

	switch stage {
	case StageSelectProperty:
		if d.PropertyID == 0 {
			errs["property_id"] = "select a property to advertise"
		}

	case StageCreative:
		if d.Title == "" {
			errs["title"] = "title is required"
		} else if len([]rune(d.Title)) > MaxTitleLen {
			errs["title"] = fmt.Sprintf("title must be at most %d characters", MaxTitleLen)
		}
		if d.CreativeText == "" {
			errs["creative_text"] = "ad text is required"
		} else if len([]rune(d.CreativeText)) > MaxCreativeTextLen {
			errs["creative_text"] = fmt.Sprintf("ad text must be at most %d characters", MaxCreativeTextLen)
		}

	case StageBudgetSchedule:
		if d.TotalBudget < MinTotalBudget {
			errs["total_budget"] = fmt.Sprintf("total budget must be at least %.0f", MinTotalBudget)
		}
		if d.DailyBudget < MinDailyBudget {
			errs["daily_budget"] = fmt.Sprintf("daily budget must be at least %.0f", MinDailyBudget)
		}
		if d.DailyBudget > d.TotalBudget {
			errs["daily_budget"] = "daily budget cannot exceed total budget"
		}
		if d.StartDate == "" {
			errs["start_date"] = "start date is required"
		} else if _, err := time.Parse(draftDateLayout, d.StartDate); err != nil {
			errs["start_date"] = "start date must be YYYY-MM-DD"
		}
	}

	return errs
}

// Advance validates the current stage only. On failure the stage does not
// change and Errors is populated for display; on success Errors is cleared
// and the stage increments, capped at review.
func (d *Draft) Advance() bool {
	if errs := d.ValidateStage(d.Stage); len(errs) > 0 {
		d.Errors = errs
		return false
	}
	d.Errors = nil
	if d.Stage < StageReview {
		d.Stage++
	}
	return true
}

// Retreat steps back one stage without validation, never below the first.
func (d *Draft) Retreat() {
	if d.Stage > StageSelectProperty {
		d.Stage--
	}
}

// ValidateSubmit is the final guard before creating the campaign: submission
// is only allowed from the review stage and re-runs the budget/schedule
// rules.
func (d *Draft) ValidateSubmit() map[string]string {
	if d.Stage != StageReview {
		return map[string]string{"stage": "submission is only allowed from the review step"}
	}
	return d.ValidateStage(StageBudgetSchedule)
}

// EstimatedDurationDays is a display heuristic: how long the total budget
// lasts at the daily rate.
func (d *Draft) EstimatedDurationDays() int {
	if d.DailyBudget <= 0 {
		return 0
	}
	return int(math.Round(d.TotalBudget / d.DailyBudget))
}

// EstimatedReach is a display heuristic with a fixed multiplier, not a
// contract.
func (d *Draft) EstimatedReach() int {
	if d.DailyBudget <= 0 {
		return 0
	}
	return int(math.Round(d.TotalBudget / d.DailyBudget * reachPerBudgetDay))
}

// ToCampaign materializes the draft as a pending campaign with zeroed
// counters. The draft must have passed ValidateSubmit.
func (d *Draft) ToCampaign(realtorID int64) (*AdCampaign, error) {
	start, err := time.Parse(draftDateLayout, d.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	c := &AdCampaign{
		RealtorID:   realtorID,
		PropertyID:  d.PropertyID,
		Title:       d.Title,
		Status:      StatusPending,
		TotalBudget: d.TotalBudget,
		DailyBudget: d.DailyBudget,
		StartDate:   start,
		Placement:   Placement(d.Placement),
		Creative: Creative{
			ImageURL:     d.CreativeImage,
			Text:         d.CreativeText,
			CallToAction: d.CallToAction,
		},
		Targeting: Targeting{
			Locations: pq.StringArray(d.Locations),
			AgeMin:    d.AgeMin,
			AgeMax:    d.AgeMax,
			Interests: pq.StringArray(d.Interests),
			Devices:   pq.StringArray(d.Devices),
		},
	}
	if !c.Placement.Valid() {
		c.Placement = PlacementFeed
	}
	if d.EndDate != "" {
		end, err := time.Parse(draftDateLayout, d.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		c.EndDate.Time = end
		c.EndDate.Valid = true
	}
	return c, nil
}
