package adcampaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homescout-service/internal/domain/property"
)

func validBudgetDraft() *Draft {
	d := NewDraft()
	d.PropertyID = 7
	d.Title = "Sea View Villa - Limassol"
	d.CreativeText = "Three bedrooms, private pool."
	d.TotalBudget = 100
	d.DailyBudget = 20
	d.StartDate = "2026-09-01"
	return d
}

func TestAdvanceBlockedWithoutProperty(t *testing.T) {
	d := NewDraft()

	advanced := d.Advance()

	assert.False(t, advanced)
	assert.Equal(t, StageSelectProperty, d.Stage)
	assert.Contains(t, d.Errors, "property_id")
}

func TestAdvanceNeverSkipsStages(t *testing.T) {
	d := validBudgetDraft()

	for want := StageCreative; want <= StageReview; want++ {
		require.True(t, d.Advance())
		assert.Equal(t, want, d.Stage)
		assert.Empty(t, d.Errors)
	}

	// already at review: advancing stays capped
	require.True(t, d.Advance())
	assert.Equal(t, StageReview, d.Stage)
}

func TestCreativeStageRules(t *testing.T) {
	long := func(n int) string {
		b := make([]rune, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	cases := []struct {
		name  string
		title string
		text  string
		field string
	}{
		{"empty title", "", "text", "title"},
		{"title too long", long(101), "text", "title"},
		{"empty text", "t", "", "creative_text"},
		{"text too long", "t", long(501), "creative_text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDraft()
			d.PropertyID = 1
			d.Stage = StageCreative
			d.Title = tc.title
			d.CreativeText = tc.text

			assert.False(t, d.Advance())
			assert.Equal(t, StageCreative, d.Stage)
			assert.Contains(t, d.Errors, tc.field)
		})
	}

	// boundary values are accepted
	d := NewDraft()
	d.PropertyID = 1
	d.Stage = StageCreative
	d.Title = long(100)
	d.CreativeText = long(500)
	assert.True(t, d.Advance())
}

func TestDailyOverTotalAlwaysFailsStageThree(t *testing.T) {
	cases := []struct {
		total, daily float64
	}{
		{50, 51},
		{100, 200},
		{1000000, 1000001},
	}

	for _, tc := range cases {
		d := validBudgetDraft()
		d.Stage = StageBudgetSchedule
		d.TotalBudget = tc.total
		d.DailyBudget = tc.daily

		assert.False(t, d.Advance())
		assert.Equal(t, StageBudgetSchedule, d.Stage)
		assert.Contains(t, d.Errors, "daily_budget")
	}
}

func TestBudgetFloors(t *testing.T) {
	d := validBudgetDraft()
	d.Stage = StageBudgetSchedule
	d.TotalBudget = 49
	assert.Contains(t, d.ValidateStage(StageBudgetSchedule), "total_budget")

	d = validBudgetDraft()
	d.Stage = StageBudgetSchedule
	d.DailyBudget = 4.99
	assert.Contains(t, d.ValidateStage(StageBudgetSchedule), "daily_budget")

	d = validBudgetDraft()
	d.StartDate = ""
	assert.Contains(t, d.ValidateStage(StageBudgetSchedule), "start_date")
}

func TestRetreatNeverValidatesAndFloorsAtOne(t *testing.T) {
	d := validBudgetDraft()
	d.Stage = StageReview
	d.Title = "" // would fail stage 2, retreat must not care

	d.Retreat()
	assert.Equal(t, StageBudgetSchedule, d.Stage)

	d.Retreat()
	d.Retreat()
	assert.Equal(t, StageSelectProperty, d.Stage)

	d.Retreat()
	assert.Equal(t, StageSelectProperty, d.Stage)
}

func TestApplyPropertyPrefill(t *testing.T) {
	p := &property.Property{
		ID:           42,
		Title:        "Sea View Villa",
		Description:  "Three bedrooms, private pool.",
		City:         "Limassol",
		Images:       []string{"a.jpg", "b.jpg"},
		PrimaryImage: "cover.jpg",
	}

	d := NewDraft()
	d.ApplyProperty(p)

	assert.Equal(t, int64(42), d.PropertyID)
	assert.Equal(t, "Sea View Villa - Limassol", d.Title)
	assert.Equal(t, "Three bedrooms, private pool.", d.CreativeText)
	assert.Equal(t, "cover.jpg", d.CreativeImage)
}

func TestApplyPropertyImageFallback(t *testing.T) {
	d := NewDraft()

	d.ApplyProperty(&property.Property{ID: 1, Title: "A", City: "X", Images: []string{"first.jpg"}})
	assert.Equal(t, "first.jpg", d.CreativeImage)

	d.ApplyProperty(&property.Property{ID: 2, Title: "B", City: "Y"})
	assert.Equal(t, "", d.CreativeImage)
}

func TestReselectingPropertyOverwritesEntirely(t *testing.T) {
	d := NewDraft()
	d.ApplyProperty(&property.Property{
		ID: 1, Title: "Old Flat", Description: "old text", City: "Paphos",
		PrimaryImage: "old.jpg",
	})

	q := &property.Property{
		ID: 2, Title: "New House", Description: "new text", City: "Nicosia",
	}
	d.ApplyProperty(q)

	assert.Equal(t, int64(2), d.PropertyID)
	assert.Equal(t, "New House - Nicosia", d.Title)
	assert.Equal(t, "new text", d.CreativeText)
	assert.Equal(t, "", d.CreativeImage) // no merge with the old selection
}

func TestEstimates(t *testing.T) {
	d := NewDraft()
	d.TotalBudget = 100
	d.DailyBudget = 20

	assert.Equal(t, 5, d.EstimatedDurationDays())
	assert.Equal(t, 37500, d.EstimatedReach())

	d.DailyBudget = 0
	assert.Equal(t, 0, d.EstimatedDurationDays())
	assert.Equal(t, 0, d.EstimatedReach())
}

func TestValidateSubmitRequiresReviewStage(t *testing.T) {
	d := validBudgetDraft()
	d.Stage = StageBudgetSchedule

	errs := d.ValidateSubmit()
	assert.Contains(t, errs, "stage")

	d.Stage = StageReview
	assert.Empty(t, d.ValidateSubmit())

	// submit re-runs the budget rules as a final guard
	d.DailyBudget = d.TotalBudget + 1
	assert.Contains(t, d.ValidateSubmit(), "daily_budget")
}

func TestToCampaignInitializesPendingWithZeroCounters(t *testing.T) {
	d := validBudgetDraft()
	d.Stage = StageReview
	d.EndDate = "2026-09-30"

	c, err := d.ToCampaign(9)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, int64(9), c.RealtorID)
	assert.Equal(t, int64(7), c.PropertyID)
	assert.Zero(t, c.Metrics.Impressions)
	assert.Zero(t, c.Metrics.Clicks)
	assert.Zero(t, c.Metrics.Leads)
	assert.Zero(t, c.Metrics.Spent)
	assert.True(t, c.EndDate.Valid)
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StatusDraft, StatusPending))
	assert.True(t, CanTransition(StatusPending, StatusActive))
	assert.True(t, CanTransition(StatusPending, StatusRejected))
	assert.True(t, CanTransition(StatusActive, StatusPaused))
	assert.True(t, CanTransition(StatusPaused, StatusActive))
	assert.True(t, CanTransition(StatusActive, StatusCompleted))

	// no documented edge ever reverts toward draft
	assert.False(t, CanTransition(StatusPaused, StatusDraft))
	assert.False(t, CanTransition(StatusActive, StatusDraft))
	assert.False(t, CanTransition(StatusRejected, StatusActive))
	assert.False(t, CanTransition(StatusCompleted, StatusActive))

	assert.True(t, IsTerminal(StatusRejected))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.False(t, IsTerminal(StatusPending))
}
