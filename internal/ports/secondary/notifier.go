package secondary

import "context"

// TransitionEvent describes one committed job transition, emitted to the
// notification dispatcher after the transaction commits.
type TransitionEvent struct {
	JobID           string
	FromStatus      string
	ToStatus        string
	AssignedClerkID string
}

// Notifier defines the secondary port for transition notifications.
// Delivery is best-effort: a dispatch failure is logged by the caller and
// never rolls back the committed transition.
type Notifier interface {
	DispatchTransition(ctx context.Context, event TransitionEvent) error
}
