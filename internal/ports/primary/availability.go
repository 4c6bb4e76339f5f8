package primary

import "context"

// AvailabilityService defines the primary port for clerk availability.
type AvailabilityService interface {
	// SetAvailability creates or replaces the record for (clerk, date).
	SetAvailability(ctx context.Context, req SetAvailabilityRequest) (*Availability, error)

	// ListAvailability retrieves a clerk's records, soonest first.
	ListAvailability(ctx context.Context, userID string, limit int) ([]*Availability, error)

	// ClearAvailability removes the record for (clerk, date).
	ClearAvailability(ctx context.Context, userID, date string) error
}

// Availability is the availability representation exposed to the driving layer.
type Availability struct {
	ID            string
	UserID        string
	AvailableDate string
	IsAvailable   bool
	StartTime     string
	EndTime       string
	Postcode      string
	Notes         string
}

// SetAvailabilityRequest contains parameters for filing availability.
type SetAvailabilityRequest struct {
	UserID        string
	AvailableDate string // YYYY-MM-DD
	IsAvailable   bool
	StartTime     string // HH:MM, defaults to 08:00
	EndTime       string // HH:MM, defaults to 18:00
	Postcode      string // defaults to the clerk's profile postcode
	Notes         string
}
