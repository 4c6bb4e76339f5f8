package job

import "errors"

// Error kinds surfaced by lifecycle operations. The calling layer matches on
// these with errors.Is to map failures to distinct exit messages or HTTP
// status codes.
var (
	// ErrUnauthorizedActor means the actor lacks the role or ownership
	// required for the requested transition. Checked before transition
	// legality so forbidden operations never leak state information.
	ErrUnauthorizedActor = errors.New("actor is not authorized for this operation")

	// ErrInvalidTransition means the job's current status does not permit
	// the requested operation.
	ErrInvalidTransition = errors.New("invalid job status transition")

	// ErrNotFound means the referenced job does not exist.
	ErrNotFound = errors.New("job not found")

	// ErrPersistenceConflict means a concurrent writer won the race for the
	// same job. Safe to retry the whole operation once from fresh state.
	ErrPersistenceConflict = errors.New("job was modified concurrently")
)
