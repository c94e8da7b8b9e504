// internal/service/preferences/preferences.go
package preferences

import (
	"context"
	"fmt"

	"homescout-service/internal/domain/preferences"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type PreferencesService struct {
	preferencesRepo *postgres.PreferencesRepository
	logger          *zap.Logger
}

func NewPreferencesService(preferencesRepo *postgres.PreferencesRepository, logger *zap.Logger) *PreferencesService {
	return &PreferencesService{preferencesRepo: preferencesRepo, logger: logger}
}

// Get returns the caller's saved preferences, or a zero-valued record when
// none have been set yet.
func (s *PreferencesService) Get(ctx context.Context, userID int64) (*preferences.BuyerPreferences, error) {
	p, err := s.preferencesRepo.FindByUser(ctx, userID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return &preferences.BuyerPreferences{UserID: userID}, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *PreferencesService) Update(ctx context.Context, userID int64, req *preferences.UpdatePreferencesRequest) (*preferences.BuyerPreferences, error) {
	if req.MaxPrice > 0 && req.MinPrice > req.MaxPrice {
		return nil, fmt.Errorf("min price exceeds max price: %w", xerrors.ErrInvalidInput)
	}

	p := &preferences.BuyerPreferences{
		UserID:        userID,
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		MinBedrooms:   req.MinBedrooms,
		PropertyTypes: req.PropertyTypes,
		Cities:        req.Cities,
	}

	if err := s.preferencesRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("buyer preferences updated", zap.Int64("user_id", userID))
	return p, nil
}
