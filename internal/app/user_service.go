package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/fieldops/internal/models"
	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepo secondary.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(userRepo secondary.UserRepository, logger zerolog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo: userRepo,
		logger:   logger.With().Str("component", "user_service").Logger(),
	}
}

// CreateUser creates a new user.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.CreateUserResponse, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	switch req.Role {
	case models.RoleAdmin, models.RoleClerk, models.RoleAgent:
	default:
		return nil, fmt.Errorf("invalid role %q (must be admin, clerk or agent)", req.Role)
	}

	record := &secondary.UserRecord{
		ID:          uuid.NewString(),
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		IsActive:    true,
		Postcode:    req.Postcode,
		City:        req.City,
	}

	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", record.ID).Str("role", record.Role).Msg("user created")

	return &primary.CreateUserResponse{
		UserID: record.ID,
		User:   recordToUser(record),
	}, nil
}

// GetUser retrieves a user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordToUser(record), nil
}

// ListUsers lists users with optional filters.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filters primary.UserFilters) ([]*primary.User, error) {
	records, err := s.userRepo.List(ctx, secondary.UserFilters{
		Role:        filters.Role,
		ActiveOnly:  filters.ActiveOnly,
		OnShiftOnly: filters.OnShiftOnly,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*primary.User, 0, len(records))
	for _, r := range records {
		users = append(users, recordToUser(r))
	}
	return users, nil
}

// UpdateUser updates profile fields.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req primary.UpdateUserRequest) error {
	record, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	if req.FullName != "" {
		record.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		record.PhoneNumber = req.PhoneNumber
	}
	if req.Postcode != "" {
		record.Postcode = req.Postcode
	}
	if req.City != "" {
		record.City = req.City
	}

	if err := s.userRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// SetShift flips a clerk's on-shift flag.
func (s *UserServiceImpl) SetShift(ctx context.Context, userID string, onShift bool) error {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if record.Role != models.RoleClerk {
		return fmt.Errorf("user %s has role %s, only clerks have shifts", userID, record.Role)
	}

	if err := s.userRepo.SetShift(ctx, userID, onShift); err != nil {
		return fmt.Errorf("failed to set shift: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Bool("on_shift", onShift).Msg("shift updated")
	return nil
}

// UpdateLocation records a clerk's live location.
func (s *UserServiceImpl) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("invalid coordinates (%f, %f)", lat, lng)
	}

	if err := s.userRepo.UpdateLocation(ctx, userID, lat, lng); err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	return nil
}

// DeactivateUser marks a user inactive.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("user deactivated")
	return nil
}

func recordToUser(r *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:          r.ID,
		Email:       r.Email,
		FullName:    r.FullName,
		PhoneNumber: r.PhoneNumber,
		Role:        r.Role,
		IsActive:    r.IsActive,
		IsOnShift:   r.IsOnShift,
		Postcode:    r.Postcode,
		CreatedAt:   r.CreatedAt,
	}
}

var _ primary.UserService = (*UserServiceImpl)(nil)
