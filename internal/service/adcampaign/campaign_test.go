// internal/service/adcampaign/campaign_test.go
package adcampaign

import (
	"context"
	"testing"

	"homescout-service/internal/domain/adcampaign"
	"homescout-service/internal/domain/property"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func boardFixture() []adcampaign.AdCampaign {
	return []adcampaign.AdCampaign{
		{
			ID: 1, Title: "Sea View Villa - Mombasa", Status: adcampaign.StatusActive,
			Metrics: adcampaign.Metrics{Impressions: 10000, Clicks: 200, Leads: 10, Spent: 400},
		},
		{
			ID: 2, Title: "Downtown Loft - Nairobi", Status: adcampaign.StatusPaused,
			Metrics: adcampaign.Metrics{Impressions: 5000, Clicks: 100, Leads: 5, Spent: 200},
		},
		{
			ID: 3, Title: "Garden Apartment - Nakuru", Status: adcampaign.StatusPending,
		},
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(boardFixture())

	assert.Equal(t, 1, stats.ActiveCampaigns)
	assert.InDelta(t, 600.0, stats.TotalSpent, 0.001)
	// 300 clicks over 15000 impressions
	assert.InDelta(t, 2.0, stats.AvgCTR, 0.001)
	// 600 spent over 15 leads
	assert.InDelta(t, 40.0, stats.AvgCPL, 0.001)
}

func TestComputeStatsZeroDenominators(t *testing.T) {
	stats := ComputeStats([]adcampaign.AdCampaign{
		{Status: adcampaign.StatusPending},
	})

	assert.Zero(t, stats.AvgCTR)
	assert.Zero(t, stats.AvgCPL)
	assert.Zero(t, stats.ActiveCampaigns)
}

func TestComputeStatsEmptyCollection(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Zero(t, stats.ActiveCampaigns)
	assert.Zero(t, stats.TotalSpent)
	assert.Zero(t, stats.AvgCTR)
	assert.Zero(t, stats.AvgCPL)
}

func TestFilterCampaignsByStatus(t *testing.T) {
	out := FilterCampaigns(boardFixture(), &adcampaign.BoardFilters{Status: "paused"})

	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestFilterCampaignsBySearch(t *testing.T) {
	out := FilterCampaigns(boardFixture(), &adcampaign.BoardFilters{Search: "nairobi"})

	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestFilterCampaignsCombined(t *testing.T) {
	out := FilterCampaigns(boardFixture(), &adcampaign.BoardFilters{Status: "active", Search: "villa"})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	// mismatched combination returns nothing
	out = FilterCampaigns(boardFixture(), &adcampaign.BoardFilters{Status: "paused", Search: "villa"})
	assert.Empty(t, out)
}

func TestFilterCampaignsNoFilters(t *testing.T) {
	fixture := boardFixture()

	assert.Len(t, FilterCampaigns(fixture, nil), 3)
	assert.Len(t, FilterCampaigns(fixture, &adcampaign.BoardFilters{}), 3)
}

// Filtering must not change the stats baseline: stats cover the full
// collection even when the visible rows are narrowed.
func TestStatsIndependentOfFilters(t *testing.T) {
	fixture := boardFixture()

	all := ComputeStats(fixture)
	filtered := ComputeStats(fixture)
	_ = FilterCampaigns(fixture, &adcampaign.BoardFilters{Status: "paused"})

	assert.Equal(t, all, filtered)
}

// ---- in-memory stores for service-level tests ----

type fakeCampaignStore struct {
	byID   map[int64]*adcampaign.AdCampaign
	nextID int64
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{byID: map[int64]*adcampaign.AdCampaign{}}
}

func (f *fakeCampaignStore) Create(_ context.Context, c *adcampaign.AdCampaign) error {
	f.nextID++
	c.ID = f.nextID
	stored := *c
	f.byID[c.ID] = &stored
	return nil
}

func (f *fakeCampaignStore) FindByID(_ context.Context, id int64) (*adcampaign.AdCampaign, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCampaignStore) ListByRealtor(_ context.Context, realtorID int64) ([]adcampaign.AdCampaign, error) {
	out := []adcampaign.AdCampaign{}
	for _, c := range f.byID {
		if c.RealtorID == realtorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCampaignStore) UpdateStatus(_ context.Context, id int64, status adcampaign.Status) error {
	c, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCampaignStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePropertyFinder struct {
	byID map[int64]*property.Property
}

func (f *fakePropertyFinder) FindByID(_ context.Context, id int64) (*property.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

type fakeDraftSession struct {
	drafts map[int64]*adcampaign.Draft
}

func newFakeDraftSession() *fakeDraftSession {
	return &fakeDraftSession{drafts: map[int64]*adcampaign.Draft{}}
}

func (f *fakeDraftSession) Get(_ context.Context, realtorID int64) (*adcampaign.Draft, error) {
	d, ok := f.drafts[realtorID]
	if !ok {
		return nil, xerrors.ErrDraftNotStarted
	}
	return d, nil
}

func (f *fakeDraftSession) Save(_ context.Context, realtorID int64, d *adcampaign.Draft) error {
	f.drafts[realtorID] = d
	return nil
}

func (f *fakeDraftSession) Delete(_ context.Context, realtorID int64) error {
	delete(f.drafts, realtorID)
	return nil
}

func newTestService(store *fakeCampaignStore, finder *fakePropertyFinder, drafts *fakeDraftSession) *CampaignService {
	return NewCampaignService(store, finder, drafts, zap.NewNop())
}

func submittableDraft(propertyID int64) *adcampaign.Draft {
	return &adcampaign.Draft{
		Stage:        adcampaign.StageReview,
		PropertyID:   propertyID,
		Title:        "Sea View Villa - Limassol",
		CreativeText: "Three bedrooms, private pool.",
		TotalBudget:  100,
		DailyBudget:  20,
		StartDate:    "2026-09-01",
		Placement:    "feed",
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	store := newFakeCampaignStore()
	store.byID[5] = &adcampaign.AdCampaign{ID: 5, RealtorID: 1, Status: adcampaign.StatusActive}
	store.nextID = 5
	svc := newTestService(store, &fakePropertyFinder{}, newFakeDraftSession())

	err := svc.Delete(context.Background(), 2, 5)

	assert.ErrorIs(t, err, xerrors.ErrNotOwner)
	_, found := store.byID[5]
	assert.True(t, found, "foreign delete must not remove the row")
}

func TestDeleteRemovesFromNextLoad(t *testing.T) {
	store := newFakeCampaignStore()
	store.byID[5] = &adcampaign.AdCampaign{ID: 5, RealtorID: 1, Status: adcampaign.StatusActive}
	store.nextID = 5
	svc := newTestService(store, &fakePropertyFinder{}, newFakeDraftSession())

	require.NoError(t, svc.Delete(context.Background(), 1, 5))

	board, err := svc.Board(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, board.Campaigns)

	err = svc.Delete(context.Background(), 1, 5)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSubmitRejectsDeletedProperty(t *testing.T) {
	store := newFakeCampaignStore()
	drafts := newFakeDraftSession()
	drafts.drafts[1] = submittableDraft(42)
	// property 42 is gone from the finder
	svc := newTestService(store, &fakePropertyFinder{}, drafts)

	campaign, fieldErrs, err := svc.SubmitDraft(context.Background(), 1)

	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Nil(t, campaign)
	assert.Empty(t, fieldErrs)
	assert.Empty(t, store.byID, "no campaign row may be created")
	_, draftErr := drafts.Get(context.Background(), 1)
	assert.NoError(t, draftErr, "the draft must survive a failed submit")
}

func TestSubmitRejectsForeignProperty(t *testing.T) {
	store := newFakeCampaignStore()
	drafts := newFakeDraftSession()
	drafts.drafts[1] = submittableDraft(42)
	finder := &fakePropertyFinder{byID: map[int64]*property.Property{
		42: {ID: 42, RealtorID: 99},
	}}
	svc := newTestService(store, finder, drafts)

	_, _, err := svc.SubmitDraft(context.Background(), 1)

	assert.ErrorIs(t, err, xerrors.ErrNotOwner)
	assert.Empty(t, store.byID)
}

func TestSubmitCreatesPendingCampaignAndDiscardsDraft(t *testing.T) {
	store := newFakeCampaignStore()
	drafts := newFakeDraftSession()
	drafts.drafts[1] = submittableDraft(42)
	finder := &fakePropertyFinder{byID: map[int64]*property.Property{
		42: {ID: 42, RealtorID: 1},
	}}
	svc := newTestService(store, finder, drafts)

	campaign, fieldErrs, err := svc.SubmitDraft(context.Background(), 1)

	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, campaign)
	assert.Equal(t, adcampaign.StatusPending, campaign.Status)
	assert.Equal(t, int64(1), campaign.RealtorID)

	_, draftErr := drafts.Get(context.Background(), 1)
	assert.ErrorIs(t, draftErr, xerrors.ErrDraftNotStarted)
}
