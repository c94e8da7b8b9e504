// internal/service/property/property.go
package property

import (
	"context"
	"database/sql"

	"homescout-service/internal/domain/property"
	"homescout-service/internal/domain/savedsearch"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/repository/postgres"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type PropertyService struct {
	propertyRepo    *postgres.PropertyRepository
	savedSearchRepo *postgres.SavedSearchRepository
	logger          *zap.Logger
}

func NewPropertyService(
	propertyRepo *postgres.PropertyRepository,
	savedSearchRepo *postgres.SavedSearchRepository,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo:    propertyRepo,
		savedSearchRepo: savedSearchRepo,
		logger:          logger,
	}
}

func (s *PropertyService) Create(ctx context.Context, realtorID int64, req *property.CreatePropertyRequest) (*property.Property, error) {
	t := property.PropertyType(req.Type)
	if !t.Valid() {
		return nil, xerrors.ErrInvalidInput
	}

	p := &property.Property{
		RealtorID:    realtorID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Type:         t,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		Address:      req.Address,
		City:         req.City,
		Features:     pq.StringArray(req.Features),
		Images:       pq.StringArray(req.Images),
		PrimaryImage: req.PrimaryImage,
		Active:       true,
	}
	if req.Latitude != nil {
		p.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		p.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}

	if err := s.propertyRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create property", zap.Error(err))
		return nil, err
	}

	s.logger.Info("property created",
		zap.Int64("property_id", p.ID),
		zap.Int64("realtor_id", realtorID),
	)

	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, id int64) (*property.Property, error) {
	return s.propertyRepo.FindByID(ctx, id)
}

// Update applies the provided fields. Only the owning realtor may edit.
func (s *PropertyService) Update(ctx context.Context, realtorID, id int64, req *property.UpdatePropertyRequest) (*property.Property, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.RealtorID != realtorID {
		return nil, xerrors.ErrNotOwner
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.Area != nil {
		p.Area = *req.Area
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Features != nil {
		p.Features = pq.StringArray(req.Features)
	}
	if req.Images != nil {
		p.Images = pq.StringArray(req.Images)
	}
	if req.PrimaryImage != nil {
		p.PrimaryImage = *req.PrimaryImage
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, realtorID, id int64) error {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.RealtorID != realtorID {
		return xerrors.ErrNotOwner
	}
	return s.propertyRepo.Delete(ctx, id)
}

func (s *PropertyService) ListMine(ctx context.Context, realtorID int64) ([]property.Property, error) {
	return s.propertyRepo.ListByRealtor(ctx, realtorID)
}

// Search is the public listing endpoint; inactive listings are always
// excluded here.
func (s *PropertyService) Search(ctx context.Context, filters *property.SearchFilters) ([]property.Property, error) {
	filters.OnlyActive = true
	return s.propertyRepo.Search(ctx, filters)
}

func (s *PropertyService) SaveSearch(ctx context.Context, userID int64, req *savedsearch.CreateSavedSearchRequest) (*savedsearch.SavedSearch, error) {
	ss := &savedsearch.SavedSearch{
		UserID:  userID,
		Name:    req.Name,
		Filters: req.Filters,
	}
	if err := s.savedSearchRepo.Create(ctx, ss); err != nil {
		return nil, err
	}
	return ss, nil
}

func (s *PropertyService) ListSavedSearches(ctx context.Context, userID int64) ([]savedsearch.SavedSearch, error) {
	return s.savedSearchRepo.ListByUser(ctx, userID)
}

func (s *PropertyService) DeleteSavedSearch(ctx context.Context, userID, id int64) error {
	return s.savedSearchRepo.Delete(ctx, userID, id)
}
