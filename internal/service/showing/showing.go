// internal/service/showing/showing.go
package showing

import (
	"context"
	"fmt"
	"time"

	"homescout-service/internal/domain/property"
	"homescout-service/internal/domain/showing"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/ics"
	"homescout-service/internal/repository/postgres"

	"go.uber.org/zap"
)

const defaultDurationMin = 30

type ShowingService struct {
	showingRepo  *postgres.ShowingRepository
	propertyRepo *postgres.PropertyRepository
	logger       *zap.Logger
}

func NewShowingService(
	showingRepo *postgres.ShowingRepository,
	propertyRepo *postgres.PropertyRepository,
	logger *zap.Logger,
) *ShowingService {
	return &ShowingService{
		showingRepo:  showingRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// Schedule books a viewing on one of the realtor's properties. The location
// defaults to the property address when not given.
func (s *ShowingService) Schedule(ctx context.Context, realtorID int64, req *showing.CreateShowingRequest) (*showing.Showing, error) {
	p, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}

	sh := &showing.Showing{
		PropertyID:  req.PropertyID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ScheduledAt: req.ScheduledAt,
		DurationMin: req.DurationMin,
		Location:    req.Location,
		Notes:       req.Notes,
		Status:      showing.StatusScheduled,
	}
	if sh.DurationMin <= 0 {
		sh.DurationMin = defaultDurationMin
	}
	if sh.Location == "" {
		sh.Location = p.Address
	}

	if err := s.showingRepo.Create(ctx, sh); err != nil {
		s.logger.Error("failed to create showing", zap.Error(err))
		return nil, err
	}

	s.logger.Info("showing scheduled",
		zap.Int64("showing_id", sh.ID),
		zap.Int64("property_id", sh.PropertyID),
		zap.Time("scheduled_at", sh.ScheduledAt),
	)

	return sh, nil
}

func (s *ShowingService) ListForRealtor(ctx context.Context, realtorID int64) ([]showing.Showing, error) {
	return s.showingRepo.ListByRealtor(ctx, realtorID)
}

func (s *ShowingService) ListByProperty(ctx context.Context, realtorID, propertyID int64) ([]showing.Showing, error) {
	p, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}
	return s.showingRepo.ListByProperty(ctx, propertyID)
}

func (s *ShowingService) UpdateStatus(ctx context.Context, realtorID, id int64, status showing.Status) (*showing.Showing, error) {
	sh, _, err := s.ownedShowing(ctx, realtorID, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case showing.StatusCompleted, showing.StatusCancelled:
	default:
		return nil, xerrors.ErrInvalidInput
	}
	if sh.Status != showing.StatusScheduled {
		return nil, xerrors.ErrInvalidStatus
	}

	if err := s.showingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	sh.Status = status
	return sh, nil
}

// ExportICS renders a showing as a downloadable calendar event.
func (s *ShowingService) ExportICS(ctx context.Context, realtorID, id int64) (payload string, filename string, err error) {
	sh, p, err := s.ownedShowing(ctx, realtorID, id)
	if err != nil {
		return "", "", err
	}

	ev := ics.Event{
		UID:         fmt.Sprintf("showing-%d@homescout", sh.ID),
		Summary:     fmt.Sprintf("Viewing: %s", p.Title),
		Description: sh.Notes,
		Location:    sh.Location,
		Start:       sh.ScheduledAt,
		Duration:    time.Duration(sh.DurationMin) * time.Minute,
		CreatedAt:   sh.CreatedAt,
	}

	return ics.Render(ev), ics.Filename(ev), nil
}

func (s *ShowingService) ownedShowing(ctx context.Context, realtorID, id int64) (*showing.Showing, *property.Property, error) {
	sh, err := s.showingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.propertyRepo.FindByID(ctx, sh.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	if p.RealtorID != realtorID {
		return nil, nil, xerrors.ErrNotOwner
	}

	return sh, p, nil
}
