// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the routing/CLI layer calls into.
package primary

import "context"

// JobService defines the primary port for job operations. Lifecycle
// operations (Assign through Reject) enforce actor authorization and the
// transition table; every successful transition appends one assignment log
// entry atomically with the status change.
type JobService interface {
	// CreateJob creates a new job in created status.
	CreateJob(ctx context.Context, req CreateJobRequest) (*CreateJobResponse, error)

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*Job, error)

	// ListJobs lists jobs with optional filters.
	ListJobs(ctx context.Context, filters JobFilters) ([]*Job, error)

	// Assign assigns a created job to a clerk. Admin only.
	Assign(ctx context.Context, req AssignRequest) (*Job, error)

	// AutoAssign picks the best available clerk for a created job and
	// assigns it. Admin only. Returns the job unchanged when no clerk
	// qualifies.
	AutoAssign(ctx context.Context, jobID string) (*Job, error)

	// Start moves an assigned job to in_progress. Assigned clerk only.
	Start(ctx context.Context, jobID string) (*Job, error)

	// CheckIn records arrival at the property and moves the job to
	// checked_in. Assigned clerk only.
	CheckIn(ctx context.Context, req CheckInRequest) (*Job, error)

	// Complete moves a checked_in job to completed. Assigned clerk only.
	Complete(ctx context.Context, jobID string) (*Job, error)

	// Cancel cancels a job from created, assigned or in_progress. Admin only.
	Cancel(ctx context.Context, jobID string) (*Job, error)

	// Reject returns an assigned job to the pool and attempts
	// auto-reassignment. Assigned clerk only.
	Reject(ctx context.Context, jobID string) (*Job, error)

	// AssignmentLogs retrieves the audit trail for a job, newest first.
	AssignmentLogs(ctx context.Context, jobID string) ([]*AssignmentLogEntry, error)

	// AllAssignmentLogs retrieves recent audit entries across all jobs.
	AllAssignmentLogs(ctx context.Context, limit int) ([]*AssignmentLogEntry, error)
}

// Job is the job representation exposed to the driving layer.
type Job struct {
	ID              string
	PropertyID      string
	CreatedByUserID string
	AssignedClerkID string

	JobType           string
	Priority          string
	AppointmentDate   string
	EstimatedDuration int
	AdminNotes        string

	Status string

	StartTime    string
	CheckInTime  string
	CompleteTime string

	LocationWarningFlag bool

	CreatedAt string
	UpdatedAt string
}

// AssignmentLogEntry is an audit trail entry exposed to the driving layer.
type AssignmentLogEntry struct {
	ID              string
	JobID           string
	FromStatus      string
	ToStatus        string
	PreviousClerkID string
	NewClerkID      string
	ActionType      string
	ActorUserID     string
	Reason          string
	CreatedAt       string
}

// CreateJobRequest contains parameters for creating a job.
type CreateJobRequest struct {
	PropertyID         string
	JobType            string
	Priority           string
	AppointmentDate    string
	EstimatedDuration  int
	AccessInstructions string
	KeyLocation        string
	AdminNotes         string
}

// CreateJobResponse contains the result of creating a job.
type CreateJobResponse struct {
	JobID string
	Job   *Job
}

// AssignRequest contains parameters for manually assigning a job.
type AssignRequest struct {
	JobID   string
	ClerkID string
	Reason  string
}

// CheckInRequest contains parameters for checking in at a property.
type CheckInRequest struct {
	JobID string
	Lat   *float64
	Lng   *float64
}

// JobFilters contains filter options for listing jobs.
type JobFilters struct {
	Status     string
	ClerkID    string
	PropertyID string
	Limit      int
}
