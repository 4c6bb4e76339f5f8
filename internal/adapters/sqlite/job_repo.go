package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	corejob "github.com/example/fieldops/internal/core/job"
	"github.com/example/fieldops/internal/ports/secondary"
)

// JobRepository implements secondary.JobRepository with SQLite.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new SQLite job repository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, property_id, created_by_user_id, assigned_clerk_id, assigned_agent_id,
	job_type, priority, appointment_date, estimated_duration_minutes,
	access_instructions, key_location, admin_notes, status,
	start_time, check_in_time, complete_time,
	check_in_lat, check_in_lng, location_warning_flag, created_at, updated_at`

// Create persists a new job.
// The job record must have ID and Status pre-populated by the service layer.
func (r *JobRepository) Create(ctx context.Context, job *secondary.JobRecord) error {
	if job.ID == "" {
		return fmt.Errorf("job ID must be pre-populated by service layer")
	}
	if job.Status == "" {
		return fmt.Errorf("job Status must be pre-populated by service layer")
	}

	appointment, err := nullTimeRFC3339(job.AppointmentDate)
	if err != nil {
		return fmt.Errorf("invalid appointment date: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, property_id, created_by_user_id, assigned_agent_id, job_type, priority,
			appointment_date, estimated_duration_minutes, access_instructions, key_location, admin_notes, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.PropertyID, nullString(job.CreatedByUserID), nullString(job.AssignedAgentID),
		job.JobType, job.Priority, appointment, job.EstimatedDuration,
		nullString(job.AccessInstructions), nullString(job.KeyLocation), nullString(job.AdminNotes),
		job.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by its ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*secondary.JobRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)

	record, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job %s: %w", id, corejob.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return record, nil
}

// List retrieves jobs matching the given filters.
func (r *JobRepository) List(ctx context.Context, filters secondary.JobFilters) ([]*secondary.JobRecord, error) {
	query := "SELECT " + jobColumns + " FROM jobs"
	args := []any{}
	where := ""

	appendCond := func(cond string, arg any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, arg)
	}

	if filters.Status != "" {
		appendCond("status = ?", filters.Status)
	}
	if filters.ClerkID != "" {
		appendCond("assigned_clerk_id = ?", filters.ClerkID)
	}
	if filters.PropertyID != "" {
		appendCond("property_id = ?", filters.PropertyID)
	}

	query += where + " ORDER BY appointment_date ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*secondary.JobRecord
	for rows.Next() {
		record, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, record)
	}

	return jobs, rows.Err()
}

// Transition atomically applies a validated status change and appends its
// assignment log entry. The UPDATE is conditional on the expected source
// status; losing a race against a concurrent writer surfaces
// ErrPersistenceConflict and leaves both tables untouched.
func (r *JobRepository) Transition(ctx context.Context, update secondary.TransitionUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transition: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE jobs SET status = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{update.ToStatus}

	if update.SetAssignedClerkID != "" {
		query += ", assigned_clerk_id = ?"
		args = append(args, update.SetAssignedClerkID)
	}
	if update.ClearAssignedClerk {
		query += ", assigned_clerk_id = NULL"
	}

	for _, ts := range []struct {
		column string
		value  string
	}{
		{"start_time", update.StartTime},
		{"check_in_time", update.CheckInTime},
		{"complete_time", update.CompleteTime},
	} {
		if ts.value == "" {
			continue
		}
		parsed, err := nullTimeRFC3339(ts.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ts.column, err)
		}
		// Timestamps are written once by their transition; the guard
		// against overwriting lives in the column condition.
		query += ", " + ts.column + " = COALESCE(" + ts.column + ", ?)"
		args = append(args, parsed)
	}

	if update.CheckInLat != nil {
		query += ", check_in_lat = ?"
		args = append(args, *update.CheckInLat)
	}
	if update.CheckInLng != nil {
		query += ", check_in_lng = ?"
		args = append(args, *update.CheckInLng)
	}
	if update.SetLocationWarning != nil {
		query += ", location_warning_flag = ?"
		args = append(args, *update.SetLocationWarning)
	}

	query += " WHERE id = ? AND status = ?"
	args = append(args, update.JobID, update.FromStatus)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// Distinguish a missing job from a lost race.
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs WHERE id = ?", update.JobID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check job existence: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("job %s: %w", update.JobID, corejob.ErrNotFound)
		}
		return fmt.Errorf("job %s is no longer in status %q: %w", update.JobID, update.FromStatus, corejob.ErrPersistenceConflict)
	}

	log := update.Log
	_, err = tx.ExecContext(ctx,
		`INSERT INTO assignment_logs (id, job_id, from_status, to_status, previous_clerk_id, new_clerk_id, action_type, actor_user_id, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, update.JobID, update.FromStatus, update.ToStatus,
		nullString(log.PreviousClerkID), nullString(log.NewClerkID),
		log.ActionType, nullString(log.ActorUserID), nullString(log.Reason),
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to append assignment log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}

	return nil
}

// CountActiveByClerk counts a clerk's jobs in assigned, in_progress or
// checked_in status.
func (r *JobRepository) CountActiveByClerk(ctx context.Context, clerkID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM jobs WHERE assigned_clerk_id = ? AND status IN ('assigned', 'in_progress', 'checked_in')",
		clerkID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active jobs: %w", err)
	}

	return count, nil
}

// LatestCompletedClerkForProperty returns the clerk who completed the most
// recent job at the property, or empty string when there is none.
func (r *JobRepository) LatestCompletedClerkForProperty(ctx context.Context, propertyID string) (string, error) {
	var clerkID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT assigned_clerk_id FROM jobs
		 WHERE property_id = ? AND status = 'completed'
		 ORDER BY complete_time DESC LIMIT 1`,
		propertyID,
	).Scan(&clerkID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up previous clerk: %w", err)
	}

	return clerkID.String, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanJob.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*secondary.JobRecord, error) {
	var (
		createdBy, assignedClerk, assignedAgent    sql.NullString
		accessInstructions, keyLocation, notes     sql.NullString
		appointment                                sql.NullTime
		startTime, checkInTime, completeTime       sql.NullTime
		checkInLat, checkInLng                     sql.NullFloat64
		createdAt, updatedAt                       time.Time
	)

	record := &secondary.JobRecord{}
	err := s.Scan(
		&record.ID, &record.PropertyID, &createdBy, &assignedClerk, &assignedAgent,
		&record.JobType, &record.Priority, &appointment, &record.EstimatedDuration,
		&accessInstructions, &keyLocation, &notes, &record.Status,
		&startTime, &checkInTime, &completeTime,
		&checkInLat, &checkInLng, &record.LocationWarningFlag, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedByUserID = createdBy.String
	record.AssignedClerkID = assignedClerk.String
	record.AssignedAgentID = assignedAgent.String
	record.AccessInstructions = accessInstructions.String
	record.KeyLocation = keyLocation.String
	record.AdminNotes = notes.String
	record.AppointmentDate = formatNullTime(appointment)
	record.StartTime = formatNullTime(startTime)
	record.CheckInTime = formatNullTime(checkInTime)
	record.CompleteTime = formatNullTime(completeTime)
	record.CheckInLat = floatPtr(checkInLat)
	record.CheckInLng = floatPtr(checkInLng)
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)

	return record, nil
}

// Ensure JobRepository implements the interface
var _ secondary.JobRepository = (*JobRepository)(nil)
