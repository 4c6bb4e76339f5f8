package primary

import "context"

// PropertyService defines the primary port for property operations.
type PropertyService interface {
	// CreateProperty creates a new property record.
	CreateProperty(ctx context.Context, req CreatePropertyRequest) (*CreatePropertyResponse, error)

	// GetProperty retrieves a property by ID.
	GetProperty(ctx context.Context, propertyID string) (*Property, error)

	// ListProperties lists properties with optional filters.
	ListProperties(ctx context.Context, filters PropertyFilters) ([]*Property, error)

	// UpdateProperty updates an existing property.
	UpdateProperty(ctx context.Context, req UpdatePropertyRequest) error
}

// Property is the property representation exposed to the driving layer.
type Property struct {
	ID              string
	ReferenceNumber string
	AddressLine1    string
	City            string
	Postcode        string
	Latitude        *float64
	Longitude       *float64
	PropertyType    string
	ClientName      string
	IsActive        bool
	CreatedAt       string
}

// CreatePropertyRequest contains parameters for creating a property.
type CreatePropertyRequest struct {
	ReferenceNumber string
	AddressLine1    string
	AddressLine2    string
	City            string
	Postcode        string
	Latitude        *float64
	Longitude       *float64
	PropertyType    string
	Bedrooms        int
	ClientName      string
	Notes           string
}

// CreatePropertyResponse contains the result of creating a property.
type CreatePropertyResponse struct {
	PropertyID string
	Property   *Property
}

// UpdatePropertyRequest contains parameters for updating a property.
type UpdatePropertyRequest struct {
	PropertyID   string
	AddressLine1 string
	City         string
	Postcode     string
	Latitude     *float64
	Longitude    *float64
	Notes        string
}

// PropertyFilters contains filter options for listing properties.
type PropertyFilters struct {
	Postcode   string
	ActiveOnly bool
	Limit      int
}
