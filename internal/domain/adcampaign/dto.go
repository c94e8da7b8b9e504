// internal/domain/adcampaign/dto.go
package adcampaign

// UpdateCreativeRequest stages creative fields on the draft. Length limits
// are enforced by the stage-2 validation pass, not by binding, so the error
// surface stays a per-field map.
type UpdateCreativeRequest struct {
	Title         *string `json:"title"`
	CreativeImage *string `json:"creative_image"`
	CreativeText  *string `json:"creative_text"`
	CallToAction  *string `json:"call_to_action"`
	Placement     *string `json:"placement"`
}

// UpdateBudgetRequest stages budget/schedule/targeting fields on the draft.
type UpdateBudgetRequest struct {
	TotalBudget *float64 `json:"total_budget"`
	DailyBudget *float64 `json:"daily_budget"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Locations   []string `json:"locations"`
	AgeMin      *int     `json:"age_min"`
	AgeMax      *int     `json:"age_max"`
	Interests   []string `json:"interests"`
	Devices     []string `json:"devices"`
}

// DraftView is the draft plus its derived display heuristics.
type DraftView struct {
	Draft                 *Draft `json:"draft"`
	EstimatedReach        int    `json:"estimated_reach"`
	EstimatedDurationDays int    `json:"estimated_duration_days"`
}

func NewDraftView(d *Draft) *DraftView {
	return &DraftView{
		Draft:                 d,
		EstimatedReach:        d.EstimatedReach(),
		EstimatedDurationDays: d.EstimatedDurationDays(),
	}
}

// BoardFilters narrows the already-fetched campaign collection in memory.
type BoardFilters struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

// BoardStats are recomputed from the full collection on every load.
type BoardStats struct {
	ActiveCampaigns int     `json:"active_campaigns"`
	TotalSpent      float64 `json:"total_spent"`
	AvgCTR          float64 `json:"avg_ctr"`
	AvgCPL          float64 `json:"avg_cpl"`
}

// Board is the campaign list view returned to the operator.
type Board struct {
	Campaigns []AdCampaign `json:"campaigns"`
	Stats     BoardStats   `json:"stats"`
}
