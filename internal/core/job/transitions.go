// Package job contains the pure business logic for the job lifecycle.
// This is part of the Functional Core - no I/O, only pure functions.
package job

import (
	"fmt"
	"time"
)

// Status represents the possible states of a job.
type Status string

const (
	StatusCreated    Status = "created"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCheckedIn  Status = "checked_in"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Operation identifies a lifecycle operation on a job.
type Operation string

const (
	OpAssign   Operation = "assign"
	OpStart    Operation = "start"
	OpCheckIn  Operation = "check_in"
	OpComplete Operation = "complete"
	OpCancel   Operation = "cancel"
	OpReject   Operation = "reject"
)

// transitionTable maps (operation, source status) to target status. Illegal
// transitions are a closed set: any pair absent from this table is rejected.
var transitionTable = map[Operation]map[Status]Status{
	OpAssign: {
		StatusCreated: StatusAssigned,
	},
	OpStart: {
		StatusAssigned: StatusInProgress,
	},
	OpCheckIn: {
		StatusInProgress: StatusCheckedIn,
	},
	OpComplete: {
		StatusCheckedIn: StatusCompleted,
	},
	OpCancel: {
		StatusCreated:    StatusCancelled,
		StatusAssigned:   StatusCancelled,
		StatusInProgress: StatusCancelled,
	},
	OpReject: {
		StatusAssigned: StatusCreated,
	},
}

// TransitionResult captures the outcome of applying a lifecycle operation:
// the new status plus any timestamps the transition produces. Each timestamp
// is set by exactly one transition and never overwritten.
type TransitionResult struct {
	FromStatus Status
	ToStatus   Status

	// StartTime is set by OpStart.
	StartTime *time.Time
	// CheckInTime is set by OpCheckIn.
	CheckInTime *time.Time
	// CompleteTime is set by OpComplete.
	CompleteTime *time.Time

	// ClearAssignedClerk is set by OpReject: the job returns to the
	// assignment pool with no clerk.
	ClearAssignedClerk bool
}

// JobState is the slice of job state the transition logic needs.
type JobState struct {
	Status       Status
	StartTimeSet bool
}

// ApplyTransition validates op against the transition table and returns the
// resulting state change. Returns ErrInvalidTransition (wrapped with the
// offending pair) when the current status does not permit op. The caller
// passes the current time to keep this function pure.
func ApplyTransition(op Operation, state JobState, now time.Time) (TransitionResult, error) {
	targets, ok := transitionTable[op]
	if !ok {
		return TransitionResult{}, fmt.Errorf("unknown operation %q: %w", op, ErrInvalidTransition)
	}

	to, ok := targets[state.Status]
	if !ok {
		return TransitionResult{}, fmt.Errorf("cannot %s a job in status %q: %w", op, state.Status, ErrInvalidTransition)
	}

	result := TransitionResult{FromStatus: state.Status, ToStatus: to}

	switch op {
	case OpStart:
		result.StartTime = &now
	case OpCheckIn:
		// Check-in requires the start timestamp from the preceding
		// transition. A job in_progress without one is corrupt state.
		if !state.StartTimeSet {
			return TransitionResult{}, fmt.Errorf("cannot check in before start time is recorded: %w", ErrInvalidTransition)
		}
		result.CheckInTime = &now
	case OpComplete:
		result.CompleteTime = &now
	case OpReject:
		result.ClearAssignedClerk = true
	}

	return result, nil
}

// InitialStatus returns the status for a newly created job.
func InitialStatus() Status {
	return StatusCreated
}

// IsTerminal reports whether no operation can leave the given status.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// RequiresAssignedClerk reports whether a job in the given status must have
// an assigned clerk. The invariant: assigned clerk is non-null iff the status
// is one of assigned, in_progress, checked_in, completed.
func RequiresAssignedClerk(s Status) bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusCheckedIn, StatusCompleted:
		return true
	}
	return false
}

// ValidStatuses lists every status the schema accepts.
func ValidStatuses() []Status {
	return []Status{
		StatusCreated,
		StatusAssigned,
		StatusInProgress,
		StatusCheckedIn,
		StatusCompleted,
		StatusCancelled,
	}
}
