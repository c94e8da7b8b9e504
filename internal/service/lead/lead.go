// internal/service/lead/lead.go
package lead

import (
	"context"
	"database/sql"

	"homescout-service/internal/domain/lead"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type LeadService struct {
	leadRepo     *postgres.LeadRepository
	propertyRepo *postgres.PropertyRepository
	campaignRepo *postgres.AdCampaignRepository
	logger       *zap.Logger
}

func NewLeadService(
	leadRepo *postgres.LeadRepository,
	propertyRepo *postgres.PropertyRepository,
	campaignRepo *postgres.AdCampaignRepository,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		propertyRepo: propertyRepo,
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

// Create records an inquiry from a prospective buyer. This is a public
// operation; the property must exist and be active.
func (s *LeadService) Create(ctx context.Context, req *lead.CreateLeadRequest) (*lead.Lead, error) {
	p, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, xerrors.ErrNotFound
	}

	l := &lead.Lead{
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Message:    req.Message,
		Status:     lead.StatusNew,
	}
	if req.CampaignID != nil {
		l.CampaignID = sql.NullInt64{Int64: *req.CampaignID, Valid: true}
	}

	if err := s.leadRepo.Create(ctx, l); err != nil {
		s.logger.Error("failed to create lead", zap.Error(err))
		return nil, err
	}

	s.logger.Info("lead created",
		zap.Int64("lead_id", l.ID),
		zap.Int64("property_id", l.PropertyID),
	)

	return l, nil
}

func (s *LeadService) ListForRealtor(ctx context.Context, realtorID int64) ([]lead.Lead, error) {
	return s.leadRepo.ListByRealtor(ctx, realtorID)
}

func (s *LeadService) ListByCampaign(ctx context.Context, realtorID, campaignID int64) ([]lead.Lead, error) {
	c, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}
	return s.leadRepo.ListByCampaign(ctx, campaignID)
}

// UpdateStatus moves a lead through the contact funnel. Only the realtor
// owning the underlying property may update it.
func (s *LeadService) UpdateStatus(ctx context.Context, realtorID, id int64, status string) (*lead.Lead, error) {
	st := lead.Status(status)
	if !st.Valid() {
		return nil, xerrors.ErrInvalidInput
	}

	l, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.propertyRepo.FindByID(ctx, l.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}

	if err := s.leadRepo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}

	l.Status = st
	return l, nil
}
