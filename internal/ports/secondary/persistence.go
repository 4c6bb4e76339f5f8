// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// JobRepository defines the secondary port for job persistence.
//
// GetByID and Transition return the core/job error kinds: job.ErrNotFound
// when the job ID does not exist, and Transition returns
// job.ErrPersistenceConflict when the conditional status check finds a
// concurrent writer already moved the job.
type JobRepository interface {
	// Create persists a new job.
	Create(ctx context.Context, job *JobRecord) error

	// GetByID retrieves a job by its ID.
	GetByID(ctx context.Context, id string) (*JobRecord, error)

	// List retrieves jobs matching the given filters.
	List(ctx context.Context, filters JobFilters) ([]*JobRecord, error)

	// Transition atomically applies a validated status change and appends
	// its assignment log entry in one transaction. Both writes succeed or
	// both fail; the status column is updated conditionally on the expected
	// source status.
	Transition(ctx context.Context, update TransitionUpdate) error

	// CountActiveByClerk counts a clerk's jobs in assigned, in_progress or
	// checked_in status.
	CountActiveByClerk(ctx context.Context, clerkID string) (int, error)

	// LatestCompletedClerkForProperty returns the clerk who completed the
	// most recent job at the property, or empty string when there is none.
	LatestCompletedClerkForProperty(ctx context.Context, propertyID string) (string, error)
}

// JobRecord represents a job as stored in persistence.
// Timestamps are RFC3339 strings; empty string means unset.
type JobRecord struct {
	ID              string
	PropertyID      string
	CreatedByUserID string
	AssignedClerkID string
	AssignedAgentID string

	JobType            string
	Priority           string
	AppointmentDate    string
	EstimatedDuration  int
	AccessInstructions string
	KeyLocation        string
	AdminNotes         string

	Status string

	StartTime    string
	CheckInTime  string
	CompleteTime string

	CheckInLat          *float64
	CheckInLng          *float64
	LocationWarningFlag bool

	CreatedAt string
	UpdatedAt string
}

// JobFilters contains filter options for querying jobs.
type JobFilters struct {
	Status     string
	ClerkID    string
	PropertyID string
	Limit      int
}

// TransitionUpdate describes one validated status change plus the audit
// entry recorded with it. The repository applies the whole update in a
// single transaction.
type TransitionUpdate struct {
	JobID      string
	FromStatus string
	ToStatus   string

	// SetAssignedClerkID assigns the job when non-empty.
	SetAssignedClerkID string
	// ClearAssignedClerk removes the assignment (reject).
	ClearAssignedClerk bool

	// Lifecycle timestamps to record, RFC3339; empty means untouched.
	StartTime    string
	CheckInTime  string
	CompleteTime string

	// Check-in location capture.
	CheckInLat         *float64
	CheckInLng         *float64
	SetLocationWarning *bool

	Log AssignmentLogRecord
}

// AssignmentLogRepository defines the secondary port for the append-only
// assignment audit trail. Entries are written only through
// JobRepository.Transition; this port only reads them.
type AssignmentLogRepository interface {
	// ListByJob retrieves all entries for a job, newest first.
	ListByJob(ctx context.Context, jobID string) ([]*AssignmentLogRecord, error)

	// List retrieves entries across all jobs, newest first.
	List(ctx context.Context, limit int) ([]*AssignmentLogRecord, error)

	// CountByJob counts entries for a job.
	CountByJob(ctx context.Context, jobID string) (int, error)
}

// AssignmentLogRecord represents an assignment log entry as stored in
// persistence.
type AssignmentLogRecord struct {
	ID    string
	JobID string

	FromStatus string
	ToStatus   string

	PreviousClerkID string
	NewClerkID      string

	ActionType  string
	ActorUserID string
	Reason      string

	CreatedAt string
}

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// List retrieves users matching the given filters.
	List(ctx context.Context, filters UserFilters) ([]*UserRecord, error)

	// Update updates profile fields of an existing user.
	Update(ctx context.Context, user *UserRecord) error

	// SetShift flips a clerk's on-shift flag.
	SetShift(ctx context.Context, id string, onShift bool) error

	// UpdateLocation records a clerk's live location.
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error

	// Deactivate marks a user inactive without deleting history.
	Deactivate(ctx context.Context, id string) error
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID          string
	Email       string
	FullName    string
	PhoneNumber string
	Role        string

	IsActive  bool
	IsOnShift bool

	CurrentLat         *float64
	CurrentLng         *float64
	LastLocationUpdate string

	AddressLine1 string
	City         string
	Postcode     string

	CreatedAt string
	UpdatedAt string
}

// UserFilters contains filter options for querying users.
type UserFilters struct {
	Role        string
	ActiveOnly  bool
	OnShiftOnly bool
	Limit       int
}

// PropertyRepository defines the secondary port for property persistence.
type PropertyRepository interface {
	// Create persists a new property.
	Create(ctx context.Context, property *PropertyRecord) error

	// GetByID retrieves a property by ID.
	GetByID(ctx context.Context, id string) (*PropertyRecord, error)

	// List retrieves properties matching the given filters.
	List(ctx context.Context, filters PropertyFilters) ([]*PropertyRecord, error)

	// Update updates an existing property.
	Update(ctx context.Context, property *PropertyRecord) error
}

// PropertyRecord represents a property as stored in persistence.
type PropertyRecord struct {
	ID              string
	ReferenceNumber string

	AddressLine1 string
	AddressLine2 string
	City         string
	Postcode     string

	Latitude  *float64
	Longitude *float64

	PropertyType string
	Bedrooms     int
	ClientName   string
	Notes        string

	IsActive  bool
	CreatedAt string
	UpdatedAt string
}

// PropertyFilters contains filter options for querying properties.
type PropertyFilters struct {
	Postcode   string
	ActiveOnly bool
	Limit      int
}

// NotificationRepository defines the secondary port for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, n *NotificationRecord) error

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, filters NotificationFilters) ([]*NotificationRecord, error)

	// MarkRead marks a single notification read.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks all of a user's notifications read.
	MarkAllRead(ctx context.Context, userID string) error

	// CountUnread counts a user's unread notifications.
	CountUnread(ctx context.Context, userID string) (int, error)
}

// NotificationRecord represents a notification as stored in persistence.
type NotificationRecord struct {
	ID           string
	UserID       string
	RelatedJobID string

	Type  string
	Title string
	Body  string

	Channel        string
	DeliveryStatus string
	IsRead         bool

	CreatedAt string
}

// NotificationFilters contains filter options for querying notifications.
type NotificationFilters struct {
	UnreadOnly bool
	Limit      int
}

// AvailabilityRepository defines the secondary port for clerk availability.
type AvailabilityRepository interface {
	// Upsert creates or replaces the record for (user, date).
	Upsert(ctx context.Context, record *AvailabilityRecord) error

	// ListByUser retrieves a clerk's availability records, soonest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*AvailabilityRecord, error)

	// GetByUserAndDate retrieves the record for a specific date, nil when
	// none was filed.
	GetByUserAndDate(ctx context.Context, userID, date string) (*AvailabilityRecord, error)

	// Delete removes the record for (user, date).
	Delete(ctx context.Context, userID, date string) error
}

// AvailabilityRecord represents an availability record as stored in persistence.
type AvailabilityRecord struct {
	ID     string
	UserID string

	AvailableDate string
	IsAvailable   bool

	StartTime string
	EndTime   string

	Postcode string
	Notes    string

	CreatedAt string
	UpdatedAt string
}

// InvoiceRepository defines the secondary port for clerk invoices.
type InvoiceRepository interface {
	// Create persists a new invoice submission.
	Create(ctx context.Context, invoice *InvoiceRecord) error

	// GetByID retrieves an invoice by ID.
	GetByID(ctx context.Context, id string) (*InvoiceRecord, error)

	// ListByClerk retrieves a clerk's invoices, newest period first.
	ListByClerk(ctx context.Context, clerkID string, limit int) ([]*InvoiceRecord, error)

	// UpdateStatus sets the invoice status and optional admin notes.
	UpdateStatus(ctx context.Context, id, status, adminNotes string) error
}

// InvoiceRecord represents an invoice as stored in persistence.
type InvoiceRecord struct {
	ID      string
	ClerkID string

	MonthPeriod string
	Status      string

	InvoiceURL string
	AdminNotes string

	SubmittedAt string
	CreatedAt   string
	UpdatedAt   string
}

// MessageRepository defines the secondary port for job chat messages.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *MessageRecord) error

	// ListByJob retrieves a job's messages, oldest first.
	ListByJob(ctx context.Context, jobID string) ([]*MessageRecord, error)
}

// MessageRecord represents a chat message as stored in persistence.
type MessageRecord struct {
	ID       string
	JobID    string
	SenderID string

	Content       string
	AttachmentURL string

	IsSystemMessage bool
	SentAt          string
}
