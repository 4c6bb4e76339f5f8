package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// PropertyServiceImpl implements the PropertyService interface.
type PropertyServiceImpl struct {
	propertyRepo secondary.PropertyRepository
	logger       zerolog.Logger
}

// NewPropertyService creates a new PropertyService with injected dependencies.
func NewPropertyService(propertyRepo secondary.PropertyRepository, logger zerolog.Logger) *PropertyServiceImpl {
	return &PropertyServiceImpl{
		propertyRepo: propertyRepo,
		logger:       logger.With().Str("component", "property_service").Logger(),
	}
}

// CreateProperty creates a new property record.
func (s *PropertyServiceImpl) CreateProperty(ctx context.Context, req primary.CreatePropertyRequest) (*primary.CreatePropertyResponse, error) {
	if req.Postcode == "" {
		return nil, fmt.Errorf("postcode is required")
	}

	record := &secondary.PropertyRecord{
		ID:              uuid.NewString(),
		ReferenceNumber: req.ReferenceNumber,
		AddressLine1:    req.AddressLine1,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		Postcode:        req.Postcode,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		PropertyType:    req.PropertyType,
		Bedrooms:        req.Bedrooms,
		ClientName:      req.ClientName,
		Notes:           req.Notes,
		IsActive:        true,
	}

	if err := s.propertyRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.logger.Info().Str("property_id", record.ID).Str("postcode", record.Postcode).Msg("property created")

	return &primary.CreatePropertyResponse{
		PropertyID: record.ID,
		Property:   recordToProperty(record),
	}, nil
}

// GetProperty retrieves a property by ID.
func (s *PropertyServiceImpl) GetProperty(ctx context.Context, propertyID string) (*primary.Property, error) {
	record, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return recordToProperty(record), nil
}

// ListProperties lists properties with optional filters.
func (s *PropertyServiceImpl) ListProperties(ctx context.Context, filters primary.PropertyFilters) ([]*primary.Property, error) {
	records, err := s.propertyRepo.List(ctx, secondary.PropertyFilters{
		Postcode:   filters.Postcode,
		ActiveOnly: filters.ActiveOnly,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	properties := make([]*primary.Property, 0, len(records))
	for _, r := range records {
		properties = append(properties, recordToProperty(r))
	}
	return properties, nil
}

// UpdateProperty updates an existing property.
func (s *PropertyServiceImpl) UpdateProperty(ctx context.Context, req primary.UpdatePropertyRequest) error {
	record, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return err
	}

	if req.AddressLine1 != "" {
		record.AddressLine1 = req.AddressLine1
	}
	if req.City != "" {
		record.City = req.City
	}
	if req.Postcode != "" {
		record.Postcode = req.Postcode
	}
	if req.Latitude != nil {
		record.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		record.Longitude = req.Longitude
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	if err := s.propertyRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

func recordToProperty(r *secondary.PropertyRecord) *primary.Property {
	return &primary.Property{
		ID:              r.ID,
		ReferenceNumber: r.ReferenceNumber,
		AddressLine1:    r.AddressLine1,
		City:            r.City,
		Postcode:        r.Postcode,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		PropertyType:    r.PropertyType,
		ClientName:      r.ClientName,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
	}
}

var _ primary.PropertyService = (*PropertyServiceImpl)(nil)
