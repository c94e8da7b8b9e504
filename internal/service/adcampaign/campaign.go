// internal/service/adcampaign/campaign.go
package adcampaign

import (
	"context"
	"strings"

	"homescout-service/internal/domain/adcampaign"
	"homescout-service/internal/domain/property"
	xerrors "homescout-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// CampaignStore is the persistence surface the service depends on,
// implemented by postgres.AdCampaignRepository.
type CampaignStore interface {
	Create(ctx context.Context, c *adcampaign.AdCampaign) error
	FindByID(ctx context.Context, id int64) (*adcampaign.AdCampaign, error)
	ListByRealtor(ctx context.Context, realtorID int64) ([]adcampaign.AdCampaign, error)
	UpdateStatus(ctx context.Context, id int64, status adcampaign.Status) error
	Delete(ctx context.Context, id int64) error
}

// PropertyFinder resolves listings for ownership checks and prefill.
type PropertyFinder interface {
	FindByID(ctx context.Context, id int64) (*property.Property, error)
}

// DraftSession is the draft session store, implemented by DraftStore.
type DraftSession interface {
	Get(ctx context.Context, realtorID int64) (*adcampaign.Draft, error)
	Save(ctx context.Context, realtorID int64, d *adcampaign.Draft) error
	Delete(ctx context.Context, realtorID int64) error
}

type CampaignService struct {
	campaignRepo CampaignStore
	propertyRepo PropertyFinder
	drafts       DraftSession
	logger       *zap.Logger
}

func NewCampaignService(
	campaignRepo CampaignStore,
	propertyRepo PropertyFinder,
	drafts DraftSession,
	logger *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		propertyRepo: propertyRepo,
		drafts:       drafts,
		logger:       logger,
	}
}

// ========== Draft workflow ==========

// StartDraft opens a fresh draft, replacing any draft already in progress.
func (s *CampaignService) StartDraft(ctx context.Context, realtorID int64) (*adcampaign.Draft, error) {
	d := adcampaign.NewDraft()
	if err := s.drafts.Save(ctx, realtorID, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *CampaignService) GetDraft(ctx context.Context, realtorID int64) (*adcampaign.Draft, error) {
	return s.drafts.Get(ctx, realtorID)
}

// SelectProperty points the draft at one of the realtor's own listings and
// prefills title, ad text and image from it. Reselecting overwrites the
// prefilled fields entirely.
func (s *CampaignService) SelectProperty(ctx context.Context, realtorID, propertyID int64) (*adcampaign.Draft, error) {
	d, err := s.drafts.Get(ctx, realtorID)
	if err != nil {
		return nil, err
	}

	p, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}

	d.ApplyProperty(p)
	d.Errors = nil

	if err := s.drafts.Save(ctx, realtorID, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateCreative stages creative edits without validating them; validation
// runs when the realtor tries to advance.
func (s *CampaignService) UpdateCreative(ctx context.Context, realtorID int64, req *adcampaign.UpdateCreativeRequest) (*adcampaign.Draft, error) {
	d, err := s.drafts.Get(ctx, realtorID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.CreativeImage != nil {
		d.CreativeImage = *req.CreativeImage
	}
	if req.CreativeText != nil {
		d.CreativeText = *req.CreativeText
	}
	if req.CallToAction != nil {
		d.CallToAction = *req.CallToAction
	}
	if req.Placement != nil {
		d.Placement = *req.Placement
	}

	if err := s.drafts.Save(ctx, realtorID, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *CampaignService) UpdateBudget(ctx context.Context, realtorID int64, req *adcampaign.UpdateBudgetRequest) (*adcampaign.Draft, error) {
	d, err := s.drafts.Get(ctx, realtorID)
	if err != nil {
		return nil, err
	}

	if req.TotalBudget != nil {
		d.TotalBudget = *req.TotalBudget
	}
	if req.DailyBudget != nil {
		d.DailyBudget = *req.DailyBudget
	}
	if req.StartDate != nil {
		d.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		d.EndDate = *req.EndDate
	}
	if req.Locations != nil {
		d.Locations = req.Locations
	}
	if req.AgeMin != nil {
		d.AgeMin = *req.AgeMin
	}
	if req.AgeMax != nil {
		d.AgeMax = *req.AgeMax
	}
	if req.Interests != nil {
		d.Interests = req.Interests
	}
	if req.Devices != nil {
		d.Devices = req.Devices
	}

	if err := s.drafts.Save(ctx, realtorID, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AdvanceStage validates the current stage and moves forward on success. The
// returned draft carries the per-field errors when validation fails.
func (s *CampaignService) AdvanceStage(ctx context.Context, realtorID int64) (*adcampaign.Draft, bool, error) {
	d, err := s.drafts.Get(ctx, realtorID)
	if err != nil {
		return nil, false, err
	}

	ok := d.Advance()

	if err := s.drafts.Save(ctx, realtorID, d); err != nil {
		return nil, false, err
	}
	return d, ok, nil
}

// RetreatStage steps back without validation; staged input is kept.
func (s *CampaignService) RetreatStage(ctx context.Context, realtorID int64) (*adcampaign.Draft, error) {
	d, err := s.drafts.Get(ctx, realtorID)
	if err != nil {
		return nil, err
	}

	d.Retreat()

	if err := s.drafts.Save(ctx, realtorID, d); err != nil {
		return nil, err
	}
	return d, nil
}

// SubmitDraft turns the draft into a pending campaign and discards the
// draft. Returns field errors when the final validation pass fails.
func (s *CampaignService) SubmitDraft(ctx context.Context, realtorID int64) (*adcampaign.AdCampaign, map[string]string, error) {
	d, err := s.drafts.Get(ctx, realtorID)
	if err != nil {
		return nil, nil, err
	}

	if errs := d.ValidateSubmit(); len(errs) > 0 {
		return nil, errs, nil
	}

	// The selected listing may have been deleted or reassigned while the
	// draft sat in the session store, so ownership is verified again here.
	p, err := s.propertyRepo.FindByID(ctx, d.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	if p.RealtorID != realtorID {
		return nil, nil, xerrors.ErrNotOwner
	}

	c, err := d.ToCampaign(realtorID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create campaign", zap.Error(err))
		return nil, nil, err
	}

	if err := s.drafts.Delete(ctx, realtorID); err != nil {
		s.logger.Warn("failed to discard submitted draft", zap.Error(err))
	}

	s.logger.Info("campaign submitted",
		zap.Int64("campaign_id", c.ID),
		zap.Int64("realtor_id", realtorID),
		zap.Float64("total_budget", c.TotalBudget),
	)

	return c, nil, nil
}

func (s *CampaignService) DiscardDraft(ctx context.Context, realtorID int64) error {
	return s.drafts.Delete(ctx, realtorID)
}

// ========== Campaign board ==========

// Board returns the realtor's campaigns with collection-level stats. Stats
// are always computed over the full collection; the status and search
// filters only narrow the rows returned.
func (s *CampaignService) Board(ctx context.Context, realtorID int64, filters *adcampaign.BoardFilters) (*adcampaign.Board, error) {
	campaigns, err := s.campaignRepo.ListByRealtor(ctx, realtorID)
	if err != nil {
		return nil, err
	}

	return &adcampaign.Board{
		Campaigns: FilterCampaigns(campaigns, filters),
		Stats:     ComputeStats(campaigns),
	}, nil
}

// ComputeStats aggregates board-level numbers over the whole collection.
// Ratio stats fall back to zero when their denominator is zero.
func ComputeStats(campaigns []adcampaign.AdCampaign) adcampaign.BoardStats {
	var stats adcampaign.BoardStats
	var impressions, clicks, leads int64

	for i := range campaigns {
		c := &campaigns[i]
		if c.Status == adcampaign.StatusActive {
			stats.ActiveCampaigns++
		}
		stats.TotalSpent += c.Metrics.Spent
		impressions += c.Metrics.Impressions
		clicks += c.Metrics.Clicks
		leads += c.Metrics.Leads
	}

	if impressions > 0 {
		stats.AvgCTR = float64(clicks) / float64(impressions) * 100
	}
	if leads > 0 {
		stats.AvgCPL = stats.TotalSpent / float64(leads)
	}

	return stats
}

// FilterCampaigns narrows the collection by status and case-insensitive
// title match.
func FilterCampaigns(campaigns []adcampaign.AdCampaign, filters *adcampaign.BoardFilters) []adcampaign.AdCampaign {
	if filters == nil || (filters.Status == "" && filters.Search == "") {
		return campaigns
	}

	needle := strings.ToLower(filters.Search)
	out := []adcampaign.AdCampaign{}
	for _, c := range campaigns {
		if filters.Status != "" && string(c.Status) != filters.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Title), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *CampaignService) Get(ctx context.Context, realtorID, id int64) (*adcampaign.AdCampaign, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}
	return c, nil
}

// Pause suspends delivery of an active campaign.
func (s *CampaignService) Pause(ctx context.Context, realtorID, id int64) (*adcampaign.AdCampaign, error) {
	return s.transition(ctx, realtorID, id, adcampaign.StatusPaused)
}

// Resume puts a paused campaign back into delivery.
func (s *CampaignService) Resume(ctx context.Context, realtorID, id int64) (*adcampaign.AdCampaign, error) {
	return s.transition(ctx, realtorID, id, adcampaign.StatusActive)
}

func (s *CampaignService) transition(ctx context.Context, realtorID, id int64, to adcampaign.Status) (*adcampaign.AdCampaign, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}
	if !adcampaign.CanTransition(c.Status, to) {
		return nil, xerrors.ErrInvalidStatus
	}

	if err := s.campaignRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	s.logger.Info("campaign status changed",
		zap.Int64("campaign_id", id),
		zap.String("from", string(c.Status)),
		zap.String("to", string(to)),
	)

	c.Status = to
	return c, nil
}

func (s *CampaignService) Delete(ctx context.Context, realtorID, id int64) error {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.RealtorID != realtorID {
		return xerrors.ErrNotOwner
	}
	return s.campaignRepo.Delete(ctx, id)
}

// ========== Admin review ==========

// Review approves or rejects a pending campaign. Only the two edges out of
// pending are reachable here.
func (s *CampaignService) Review(ctx context.Context, id int64, approve bool) (*adcampaign.AdCampaign, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	to := adcampaign.StatusRejected
	if approve {
		to = adcampaign.StatusActive
	}
	if !adcampaign.CanTransition(c.Status, to) {
		return nil, xerrors.ErrInvalidStatus
	}

	if err := s.campaignRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	s.logger.Info("campaign reviewed",
		zap.Int64("campaign_id", id),
		zap.String("decision", string(to)),
	)

	c.Status = to
	return c, nil
}
