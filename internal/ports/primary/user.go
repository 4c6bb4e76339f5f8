package primary

import "context"

// UserService defines the primary port for user operations.
type UserService interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*User, error)

	// ListUsers lists users with optional filters.
	ListUsers(ctx context.Context, filters UserFilters) ([]*User, error)

	// UpdateUser updates profile fields.
	UpdateUser(ctx context.Context, req UpdateUserRequest) error

	// SetShift flips a clerk's on-shift flag.
	SetShift(ctx context.Context, userID string, onShift bool) error

	// UpdateLocation records a clerk's live location.
	UpdateLocation(ctx context.Context, userID string, lat, lng float64) error

	// DeactivateUser marks a user inactive.
	DeactivateUser(ctx context.Context, userID string) error
}

// User is the user representation exposed to the driving layer.
type User struct {
	ID          string
	Email       string
	FullName    string
	PhoneNumber string
	Role        string
	IsActive    bool
	IsOnShift   bool
	Postcode    string
	CreatedAt   string
}

// CreateUserRequest contains parameters for creating a user.
type CreateUserRequest struct {
	Email       string
	FullName    string
	PhoneNumber string
	Role        string
	Postcode    string
	City        string
}

// CreateUserResponse contains the result of creating a user.
type CreateUserResponse struct {
	UserID string
	User   *User
}

// UpdateUserRequest contains parameters for updating a user.
type UpdateUserRequest struct {
	UserID      string
	FullName    string
	PhoneNumber string
	Postcode    string
	City        string
}

// UserFilters contains filter options for listing users.
type UserFilters struct {
	Role        string
	ActiveOnly  bool
	OnShiftOnly bool
	Limit       int
}
