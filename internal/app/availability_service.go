package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/fieldops/internal/models"
	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// Working-hour defaults applied when no explicit window is filed.
const (
	defaultShiftStart = "08:00"
	defaultShiftEnd   = "18:00"
)

// AvailabilityServiceImpl implements the AvailabilityService interface.
type AvailabilityServiceImpl struct {
	availabilityRepo secondary.AvailabilityRepository
	userRepo         secondary.UserRepository
	logger           zerolog.Logger
}

// NewAvailabilityService creates a new AvailabilityService with injected dependencies.
func NewAvailabilityService(
	availabilityRepo secondary.AvailabilityRepository,
	userRepo secondary.UserRepository,
	logger zerolog.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		logger:           logger.With().Str("component", "availability_service").Logger(),
	}
}

// SetAvailability creates or replaces the record for (clerk, date).
func (s *AvailabilityServiceImpl) SetAvailability(ctx context.Context, req primary.SetAvailabilityRequest) (*primary.Availability, error) {
	clerk, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if clerk.Role != models.RoleClerk {
		return nil, fmt.Errorf("user %s has role %s, only clerks file availability", clerk.ID, clerk.Role)
	}

	if _, err := time.Parse("2006-01-02", req.AvailableDate); err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", req.AvailableDate, err)
	}

	startTime := req.StartTime
	if startTime == "" {
		startTime = defaultShiftStart
	}
	endTime := req.EndTime
	if endTime == "" {
		endTime = defaultShiftEnd
	}
	postcode := req.Postcode
	if postcode == "" {
		postcode = clerk.Postcode
	}

	record := &secondary.AvailabilityRecord{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		AvailableDate: req.AvailableDate,
		IsAvailable:   req.IsAvailable,
		StartTime:     startTime,
		EndTime:       endTime,
		Postcode:      postcode,
		Notes:         req.Notes,
	}

	if err := s.availabilityRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}

	s.logger.Info().
		Str("user_id", req.UserID).
		Str("date", req.AvailableDate).
		Bool("available", req.IsAvailable).
		Msg("availability filed")

	return recordToAvailability(record), nil
}

// ListAvailability retrieves a clerk's records, soonest first.
func (s *AvailabilityServiceImpl) ListAvailability(ctx context.Context, userID string, limit int) ([]*primary.Availability, error) {
	records, err := s.availabilityRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	result := make([]*primary.Availability, 0, len(records))
	for _, r := range records {
		result = append(result, recordToAvailability(r))
	}
	return result, nil
}

// ClearAvailability removes the record for (clerk, date).
func (s *AvailabilityServiceImpl) ClearAvailability(ctx context.Context, userID, date string) error {
	if err := s.availabilityRepo.Delete(ctx, userID, date); err != nil {
		return fmt.Errorf("failed to clear availability: %w", err)
	}
	return nil
}

func recordToAvailability(r *secondary.AvailabilityRecord) *primary.Availability {
	return &primary.Availability{
		ID:            r.ID,
		UserID:        r.UserID,
		AvailableDate: r.AvailableDate,
		IsAvailable:   r.IsAvailable,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Postcode:      r.Postcode,
		Notes:         r.Notes,
	}
}

var _ primary.AvailabilityService = (*AvailabilityServiceImpl)(nil)
