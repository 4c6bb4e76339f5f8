package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	coreassign "github.com/example/fieldops/internal/core/assign"
	corejob "github.com/example/fieldops/internal/core/job"
	"github.com/example/fieldops/internal/ctxutil"
	"github.com/example/fieldops/internal/models"
	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// JobServiceImpl implements the JobService interface. It is the single
// gateway for job status changes: every lifecycle operation runs the actor
// guard, then the transition table, then one atomic repository write that
// couples the status change with its assignment log entry.
type JobServiceImpl struct {
	jobRepo          secondary.JobRepository
	logRepo          secondary.AssignmentLogRepository
	userRepo         secondary.UserRepository
	propertyRepo     secondary.PropertyRepository
	availabilityRepo secondary.AvailabilityRepository
	notifier         secondary.Notifier
	logger           zerolog.Logger
}

// NewJobService creates a new JobService with injected dependencies.
func NewJobService(
	jobRepo secondary.JobRepository,
	logRepo secondary.AssignmentLogRepository,
	userRepo secondary.UserRepository,
	propertyRepo secondary.PropertyRepository,
	availabilityRepo secondary.AvailabilityRepository,
	notifier secondary.Notifier,
	logger zerolog.Logger,
) *JobServiceImpl {
	return &JobServiceImpl{
		jobRepo:          jobRepo,
		logRepo:          logRepo,
		userRepo:         userRepo,
		propertyRepo:     propertyRepo,
		availabilityRepo: availabilityRepo,
		notifier:         notifier,
		logger:           logger.With().Str("component", "job_service").Logger(),
	}
}

// CreateJob creates a new job in created status.
func (s *JobServiceImpl) CreateJob(ctx context.Context, req primary.CreateJobRequest) (*primary.CreateJobResponse, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.propertyRepo.GetByID(ctx, req.PropertyID); err != nil {
		return nil, fmt.Errorf("property not found: %w", err)
	}

	jobType := req.JobType
	if jobType == "" {
		jobType = models.JobTypeInspection
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	duration := req.EstimatedDuration
	if duration <= 0 {
		duration = 60
	}

	record := &secondary.JobRecord{
		ID:                 uuid.NewString(),
		PropertyID:         req.PropertyID,
		CreatedByUserID:    actor.ID,
		JobType:            jobType,
		Priority:           priority,
		AppointmentDate:    req.AppointmentDate,
		EstimatedDuration:  duration,
		AccessInstructions: req.AccessInstructions,
		KeyLocation:        req.KeyLocation,
		AdminNotes:         req.AdminNotes,
		Status:             string(corejob.InitialStatus()),
	}

	if err := s.jobRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Info().
		Str("job_id", record.ID).
		Str("property_id", record.PropertyID).
		Str("actor", actor.ID).
		Msg("job created")

	return &primary.CreateJobResponse{
		JobID: record.ID,
		Job:   recordToJob(record),
	}, nil
}

// GetJob retrieves a job by ID.
func (s *JobServiceImpl) GetJob(ctx context.Context, jobID string) (*primary.Job, error) {
	record, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return recordToJob(record), nil
}

// ListJobs lists jobs with optional filters.
func (s *JobServiceImpl) ListJobs(ctx context.Context, filters primary.JobFilters) ([]*primary.Job, error) {
	records, err := s.jobRepo.List(ctx, secondary.JobFilters{
		Status:     filters.Status,
		ClerkID:    filters.ClerkID,
		PropertyID: filters.PropertyID,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*primary.Job, 0, len(records))
	for _, r := range records {
		jobs = append(jobs, recordToJob(r))
	}
	return jobs, nil
}

// Assign assigns a created job to a clerk. Admin only.
func (s *JobServiceImpl) Assign(ctx context.Context, req primary.AssignRequest) (*primary.Job, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	// Authorization is checked before the transition table so an
	// unauthorized caller always sees the same error kind, whatever state
	// the job is in.
	guardCtx := corejob.GuardContext{
		ActorID:         actor.ID,
		ActorRole:       corejob.Role(actor.Role),
		AssignedClerkID: job.AssignedClerkID,
	}
	if result := corejob.CanAssign(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	clerk, err := s.userRepo.GetByID(ctx, req.ClerkID)
	if err != nil {
		return nil, fmt.Errorf("clerk not found: %w", err)
	}
	if clerk.Role != models.RoleClerk {
		return nil, fmt.Errorf("user %s has role %s, jobs can only be assigned to clerks", clerk.ID, clerk.Role)
	}

	transition, err := corejob.ApplyTransition(corejob.OpAssign, jobState(job), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual assignment"
	}

	update := transitionUpdate(req.JobID, transition, secondary.AssignmentLogRecord{
		ID:          uuid.NewString(),
		ActionType:  models.ActionManualOverride,
		NewClerkID:  req.ClerkID,
		ActorUserID: actor.ID,
		Reason:      reason,
	})
	update.SetAssignedClerkID = req.ClerkID

	return s.commit(ctx, update, req.ClerkID)
}

// AutoAssign picks the best available clerk for a created job and assigns
// it. Admin only. Returns the job unchanged when no clerk qualifies.
func (s *JobServiceImpl) AutoAssign(ctx context.Context, jobID string) (*primary.Job, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	guardCtx := corejob.GuardContext{
		ActorID:         actor.ID,
		ActorRole:       corejob.Role(actor.Role),
		AssignedClerkID: job.AssignedClerkID,
	}
	if result := corejob.CanAssign(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	transition, err := corejob.ApplyTransition(corejob.OpAssign, jobState(job), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	selection, found, err := s.planAssignment(ctx, job, "")
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.Warn().Str("job_id", jobID).Msg("no eligible clerk for auto-assignment")
		return recordToJob(job), nil
	}

	update := transitionUpdate(jobID, transition, secondary.AssignmentLogRecord{
		ID:          uuid.NewString(),
		ActionType:  models.ActionAutoAssign,
		NewClerkID:  selection.ClerkID,
		ActorUserID: actor.ID,
		Reason:      fmt.Sprintf("auto-assigned with score %.1f", selection.Score),
	})
	update.SetAssignedClerkID = selection.ClerkID

	return s.commit(ctx, update, selection.ClerkID)
}

// Start moves an assigned job to in_progress. Assigned clerk only.
func (s *JobServiceImpl) Start(ctx context.Context, jobID string) (*primary.Job, error) {
	return s.clerkTransition(ctx, jobID, corejob.OpStart, corejob.CanStart, nil)
}

// CheckIn records arrival at the property and moves the job to checked_in.
// Assigned clerk only. When both the capture and the property have
// coordinates, a capture more than 100 meters away flags the job with a
// location warning rather than failing the check-in.
func (s *JobServiceImpl) CheckIn(ctx context.Context, req primary.CheckInRequest) (*primary.Job, error) {
	return s.clerkTransition(ctx, req.JobID, corejob.OpCheckIn, corejob.CanCheckIn, func(job *secondary.JobRecord, update *secondary.TransitionUpdate) error {
		if req.Lat == nil || req.Lng == nil {
			return nil
		}
		update.CheckInLat = req.Lat
		update.CheckInLng = req.Lng

		property, err := s.propertyRepo.GetByID(ctx, job.PropertyID)
		if err != nil {
			return fmt.Errorf("property not found: %w", err)
		}
		if property.Latitude == nil || property.Longitude == nil {
			return nil
		}

		distanceKm := coreassign.HaversineKm(*req.Lat, *req.Lng, *property.Latitude, *property.Longitude)
		warn := distanceKm > checkInRadiusKm
		update.SetLocationWarning = &warn
		if warn {
			s.logger.Warn().
				Str("job_id", req.JobID).
				Float64("distance_km", distanceKm).
				Msg("check-in location far from property")
		}
		return nil
	})
}

// Complete moves a checked_in job to completed. Assigned clerk only.
func (s *JobServiceImpl) Complete(ctx context.Context, jobID string) (*primary.Job, error) {
	return s.clerkTransition(ctx, jobID, corejob.OpComplete, corejob.CanComplete, nil)
}

// Cancel cancels a job from created, assigned or in_progress. Admin only.
func (s *JobServiceImpl) Cancel(ctx context.Context, jobID string) (*primary.Job, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	guardCtx := corejob.GuardContext{
		ActorID:         actor.ID,
		ActorRole:       corejob.Role(actor.Role),
		AssignedClerkID: job.AssignedClerkID,
	}
	if result := corejob.CanCancel(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	transition, err := corejob.ApplyTransition(corejob.OpCancel, jobState(job), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	update := transitionUpdate(jobID, transition, secondary.AssignmentLogRecord{
		ID:              uuid.NewString(),
		ActionType:      models.ActionCancellation,
		PreviousClerkID: job.AssignedClerkID,
		ActorUserID:     actor.ID,
		Reason:          "cancelled by admin",
	})

	return s.commit(ctx, update, job.AssignedClerkID)
}

// Reject returns an assigned job to the pool and attempts auto-reassignment
// to a different clerk. Assigned clerk only.
func (s *JobServiceImpl) Reject(ctx context.Context, jobID string) (*primary.Job, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	guardCtx := corejob.GuardContext{
		ActorID:         actor.ID,
		ActorRole:       corejob.Role(actor.Role),
		AssignedClerkID: job.AssignedClerkID,
	}
	if result := corejob.CanReject(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	transition, err := corejob.ApplyTransition(corejob.OpReject, jobState(job), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	update := transitionUpdate(jobID, transition, secondary.AssignmentLogRecord{
		ID:              uuid.NewString(),
		ActionType:      models.ActionRejection,
		PreviousClerkID: actor.ID,
		ActorUserID:     actor.ID,
		Reason:          "rejected by assigned clerk",
	})

	rejected, err := s.commit(ctx, update, actor.ID)
	if err != nil {
		return nil, err
	}

	// Best-effort reassignment to the next ranked clerk. The rejecting
	// clerk is excluded; when nobody else qualifies the job stays in the
	// pool for manual assignment.
	return s.reassignAfterRejection(ctx, rejected, actor.ID)
}

// AssignmentLogs retrieves the audit trail for a job, newest first.
func (s *JobServiceImpl) AssignmentLogs(ctx context.Context, jobID string) ([]*primary.AssignmentLogEntry, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	records, err := s.logRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment logs: %w", err)
	}
	return logRecordsToEntries(records), nil
}

// AllAssignmentLogs retrieves recent audit entries across all jobs.
func (s *JobServiceImpl) AllAssignmentLogs(ctx context.Context, limit int) ([]*primary.AssignmentLogEntry, error) {
	records, err := s.logRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment logs: %w", err)
	}
	return logRecordsToEntries(records), nil
}

// checkInRadiusKm is the distance beyond which a check-in capture raises a
// location warning on the job.
const checkInRadiusKm = 0.1

// clerkTransition runs the shared flow for clerk-driven operations: resolve
// actor, fetch job, guard, apply the transition table, then one atomic
// write. decorate, when non-nil, adds operation-specific fields to the
// update before it is committed.
func (s *JobServiceImpl) clerkTransition(
	ctx context.Context,
	jobID string,
	op corejob.Operation,
	guard func(corejob.GuardContext) corejob.GuardResult,
	decorate func(job *secondary.JobRecord, update *secondary.TransitionUpdate) error,
) (*primary.Job, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	guardCtx := corejob.GuardContext{
		ActorID:         actor.ID,
		ActorRole:       corejob.Role(actor.Role),
		AssignedClerkID: job.AssignedClerkID,
	}
	if result := guard(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	transition, err := corejob.ApplyTransition(op, jobState(job), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	update := transitionUpdate(jobID, transition, secondary.AssignmentLogRecord{
		ID:          uuid.NewString(),
		ActionType:  models.ActionLifecycle,
		ActorUserID: actor.ID,
	})

	if decorate != nil {
		if err := decorate(job, &update); err != nil {
			return nil, err
		}
	}

	return s.commit(ctx, update, job.AssignedClerkID)
}

// commit runs the atomic transition write, re-reads the job, and dispatches
// the transition notification. Notification failures are logged and never
// surfaced: the transition has already committed.
func (s *JobServiceImpl) commit(ctx context.Context, update secondary.TransitionUpdate, notifyClerkID string) (*primary.Job, error) {
	if err := s.jobRepo.Transition(ctx, update); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, update.JobID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("job_id", update.JobID).
		Str("from", update.FromStatus).
		Str("to", update.ToStatus).
		Str("action", update.Log.ActionType).
		Msg("job transitioned")

	event := secondary.TransitionEvent{
		JobID:           update.JobID,
		FromStatus:      update.FromStatus,
		ToStatus:        update.ToStatus,
		AssignedClerkID: notifyClerkID,
	}
	if err := s.notifier.DispatchTransition(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("job_id", update.JobID).Msg("transition notification failed")
	}

	return recordToJob(job), nil
}

// planAssignment gathers candidate facts and runs the pure planner.
// excludeClerkID drops a clerk from consideration (the rejecting clerk on
// reassignment).
func (s *JobServiceImpl) planAssignment(ctx context.Context, job *secondary.JobRecord, excludeClerkID string) (coreassign.Selection, bool, error) {
	property, err := s.propertyRepo.GetByID(ctx, job.PropertyID)
	if err != nil {
		return coreassign.Selection{}, false, fmt.Errorf("property not found: %w", err)
	}

	// Eligibility depends on when the appointment is. Same-day jobs go to
	// clerks on shift right now with a live location; future jobs go to
	// clerks who filed availability for that date, regardless of the
	// current shift flag.
	appointmentDate := dateOf(job.AppointmentDate)
	sameDay := appointmentDate == "" || appointmentDate == time.Now().UTC().Format("2006-01-02")

	clerks, err := s.userRepo.List(ctx, secondary.UserFilters{
		Role:        models.RoleClerk,
		ActiveOnly:  true,
		OnShiftOnly: sameDay,
	})
	if err != nil {
		return coreassign.Selection{}, false, fmt.Errorf("failed to list clerks: %w", err)
	}

	candidates := make([]coreassign.Candidate, 0, len(clerks))
	for _, clerk := range clerks {
		if clerk.ID == excludeClerkID {
			continue
		}

		candidate := coreassign.Candidate{ClerkID: clerk.ID}

		if clerk.CurrentLat != nil && clerk.CurrentLng != nil {
			candidate.HasLocation = true
			candidate.Lat = *clerk.CurrentLat
			candidate.Lng = *clerk.CurrentLng
		}

		if sameDay {
			if !candidate.HasLocation {
				continue
			}
		} else {
			availability, err := s.availabilityRepo.GetByUserAndDate(ctx, clerk.ID, appointmentDate)
			if err != nil {
				return coreassign.Selection{}, false, fmt.Errorf("failed to check availability: %w", err)
			}
			if availability == nil || !availability.IsAvailable {
				continue
			}
			candidate.AvailabilityPostcode = availability.Postcode
		}

		activeJobs, err := s.jobRepo.CountActiveByClerk(ctx, clerk.ID)
		if err != nil {
			return coreassign.Selection{}, false, fmt.Errorf("failed to count active jobs: %w", err)
		}
		candidate.ActiveJobs = activeJobs

		candidates = append(candidates, candidate)
	}

	previousClerk, err := s.jobRepo.LatestCompletedClerkForProperty(ctx, job.PropertyID)
	if err != nil {
		return coreassign.Selection{}, false, fmt.Errorf("failed to look up previous clerk: %w", err)
	}
	if previousClerk == excludeClerkID {
		previousClerk = ""
	}

	input := coreassign.PlanInput{
		PropertyPostcode: property.Postcode,
		PreviousClerkID:  previousClerk,
		Candidates:       candidates,
	}
	if property.Latitude != nil && property.Longitude != nil {
		input.HasPropertyLocation = true
		input.PropertyLat = *property.Latitude
		input.PropertyLng = *property.Longitude
	}

	selection, found := coreassign.SelectClerk(input)
	return selection, found, nil
}

// reassignAfterRejection attempts to hand a freshly rejected job to the next
// ranked clerk. Failures leave the job in created status and are not
// errors: the rejection itself already committed.
func (s *JobServiceImpl) reassignAfterRejection(ctx context.Context, job *primary.Job, rejectingClerkID string) (*primary.Job, error) {
	record, err := s.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return job, nil
	}

	selection, found, err := s.planAssignment(ctx, record, rejectingClerkID)
	if err != nil || !found {
		if err != nil {
			s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("reassignment planning failed")
		}
		return job, nil
	}

	transition, err := corejob.ApplyTransition(corejob.OpAssign, jobState(record), time.Now().UTC())
	if err != nil {
		return job, nil
	}

	update := transitionUpdate(job.ID, transition, secondary.AssignmentLogRecord{
		ID:              uuid.NewString(),
		ActionType:      models.ActionAutoAssign,
		PreviousClerkID: rejectingClerkID,
		NewClerkID:      selection.ClerkID,
		Reason:          fmt.Sprintf("auto-reassigned after rejection with score %.1f", selection.Score),
	})
	update.SetAssignedClerkID = selection.ClerkID

	reassigned, err := s.commit(ctx, update, selection.ClerkID)
	if err != nil {
		s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("reassignment after rejection failed")
		return job, nil
	}
	return reassigned, nil
}

// actor resolves the acting user from context. Every mutating operation
// requires one.
func (s *JobServiceImpl) actor(ctx context.Context) (*secondary.UserRecord, error) {
	actorID := ctxutil.ActorFromContext(ctx)
	if actorID == "" {
		return nil, fmt.Errorf("no acting user in context: %w", corejob.ErrUnauthorizedActor)
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor %s: %w", actorID, corejob.ErrUnauthorizedActor)
	}
	if !actor.IsActive {
		return nil, fmt.Errorf("actor %s is deactivated: %w", actorID, corejob.ErrUnauthorizedActor)
	}
	return actor, nil
}

// jobState extracts the slice of record state the transition table needs.
func jobState(job *secondary.JobRecord) corejob.JobState {
	return corejob.JobState{
		Status:       corejob.Status(job.Status),
		StartTimeSet: job.StartTime != "",
	}
}

// transitionUpdate builds the repository update for a validated transition.
func transitionUpdate(jobID string, t corejob.TransitionResult, log secondary.AssignmentLogRecord) secondary.TransitionUpdate {
	update := secondary.TransitionUpdate{
		JobID:              jobID,
		FromStatus:         string(t.FromStatus),
		ToStatus:           string(t.ToStatus),
		ClearAssignedClerk: t.ClearAssignedClerk,
		Log:                log,
	}

	if t.StartTime != nil {
		update.StartTime = t.StartTime.Format(time.RFC3339)
	}
	if t.CheckInTime != nil {
		update.CheckInTime = t.CheckInTime.Format(time.RFC3339)
	}
	if t.CompleteTime != nil {
		update.CompleteTime = t.CompleteTime.Format(time.RFC3339)
	}

	return update
}

// dateOf extracts the YYYY-MM-DD date from an RFC3339 timestamp.
func dateOf(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func recordToJob(r *secondary.JobRecord) *primary.Job {
	return &primary.Job{
		ID:                  r.ID,
		PropertyID:          r.PropertyID,
		CreatedByUserID:     r.CreatedByUserID,
		AssignedClerkID:     r.AssignedClerkID,
		JobType:             r.JobType,
		Priority:            r.Priority,
		AppointmentDate:     r.AppointmentDate,
		EstimatedDuration:   r.EstimatedDuration,
		AdminNotes:          r.AdminNotes,
		Status:              r.Status,
		StartTime:           r.StartTime,
		CheckInTime:         r.CheckInTime,
		CompleteTime:        r.CompleteTime,
		LocationWarningFlag: r.LocationWarningFlag,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func logRecordsToEntries(records []*secondary.AssignmentLogRecord) []*primary.AssignmentLogEntry {
	entries := make([]*primary.AssignmentLogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, &primary.AssignmentLogEntry{
			ID:              r.ID,
			JobID:           r.JobID,
			FromStatus:      r.FromStatus,
			ToStatus:        r.ToStatus,
			PreviousClerkID: r.PreviousClerkID,
			NewClerkID:      r.NewClerkID,
			ActionType:      r.ActionType,
			ActorUserID:     r.ActorUserID,
			Reason:          r.Reason,
			CreatedAt:       r.CreatedAt,
		})
	}
	return entries
}

var _ primary.JobService = (*JobServiceImpl)(nil)
