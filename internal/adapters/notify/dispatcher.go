// Package notify implements the transition notification dispatcher.
//
// Dispatch is best-effort: each delivery writes an in-app notification row
// for the affected clerk and logs the event. Failures are logged and
// reported to the caller, which must never let them roll back or fail the
// committed transition.
package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	corejob "github.com/example/fieldops/internal/core/job"
	"github.com/example/fieldops/internal/models"
	"github.com/example/fieldops/internal/ports/secondary"
)

// Dispatcher translates committed job transitions into in-app notifications.
type Dispatcher struct {
	notifications secondary.NotificationRepository
	logger        zerolog.Logger
}

// NewDispatcher creates a Dispatcher backed by the given notification store.
func NewDispatcher(notifications secondary.NotificationRepository, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		logger:        logger.With().Str("component", "notify").Logger(),
	}
}

// DispatchTransition records an in-app notification for the clerk affected
// by the transition. Transitions with no interested recipient (no assigned
// clerk) are logged and skipped.
func (d *Dispatcher) DispatchTransition(ctx context.Context, event secondary.TransitionEvent) error {
	notifType, title := classify(event)

	if event.AssignedClerkID == "" {
		d.logger.Debug().
			Str("job_id", event.JobID).
			Str("to_status", event.ToStatus).
			Msg("transition has no recipient, skipping notification")
		return nil
	}

	n := &secondary.NotificationRecord{
		ID:             uuid.NewString(),
		UserID:         event.AssignedClerkID,
		RelatedJobID:   event.JobID,
		Type:           notifType,
		Title:          title,
		Body:           fmt.Sprintf("Job %s moved from %s to %s", event.JobID, event.FromStatus, event.ToStatus),
		Channel:        models.ChannelInApp,
		DeliveryStatus: "delivered",
	}

	if err := d.notifications.Create(ctx, n); err != nil {
		d.logger.Error().
			Err(err).
			Str("job_id", event.JobID).
			Str("user_id", event.AssignedClerkID).
			Msg("notification delivery failed")
		return fmt.Errorf("failed to deliver notification for job %s: %w", event.JobID, err)
	}

	d.logger.Info().
		Str("job_id", event.JobID).
		Str("user_id", event.AssignedClerkID).
		Str("type", notifType).
		Msg("transition notification delivered")

	return nil
}

// classify maps a transition to its notification type and title. A job
// returning to created from assigned is a rejection; the recipient on such
// events is the clerk who rejected it.
func classify(event secondary.TransitionEvent) (string, string) {
	switch corejob.Status(event.ToStatus) {
	case corejob.StatusAssigned:
		return models.NotificationJobAssigned, "New job assigned to you"
	case corejob.StatusCancelled:
		return models.NotificationJobCancelled, "Job cancelled"
	case corejob.StatusCompleted:
		return models.NotificationJobCompleted, "Job completed"
	case corejob.StatusCreated:
		return models.NotificationJobRejected, "Job returned to the assignment queue"
	default:
		return models.NotificationJobAssigned, fmt.Sprintf("Job updated: %s", event.ToStatus)
	}
}

var _ secondary.Notifier = (*Dispatcher)(nil)
