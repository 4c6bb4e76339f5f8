package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// AssignmentLogRepository implements secondary.AssignmentLogRepository with
// SQLite. Writes happen only inside JobRepository.Transition; this
// repository only reads.
type AssignmentLogRepository struct {
	db *sql.DB
}

// NewAssignmentLogRepository creates a new SQLite assignment log repository.
func NewAssignmentLogRepository(db *sql.DB) *AssignmentLogRepository {
	return &AssignmentLogRepository{db: db}
}

const logColumns = `id, job_id, from_status, to_status, previous_clerk_id, new_clerk_id, action_type, actor_user_id, reason, created_at`

// ListByJob retrieves all entries for a job, newest first.
func (r *AssignmentLogRepository) ListByJob(ctx context.Context, jobID string) ([]*secondary.AssignmentLogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+logColumns+" FROM assignment_logs WHERE job_id = ? ORDER BY created_at DESC, id DESC",
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

// List retrieves entries across all jobs, newest first.
func (r *AssignmentLogRepository) List(ctx context.Context, limit int) ([]*secondary.AssignmentLogRecord, error) {
	query := "SELECT " + logColumns + " FROM assignment_logs ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

// CountByJob counts entries for a job.
func (r *AssignmentLogRepository) CountByJob(ctx context.Context, jobID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assignment_logs WHERE job_id = ?",
		jobID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignment logs: %w", err)
	}

	return count, nil
}

func scanLogs(rows *sql.Rows) ([]*secondary.AssignmentLogRecord, error) {
	var logs []*secondary.AssignmentLogRecord
	for rows.Next() {
		var (
			prevClerk, newClerk, actor, reason sql.NullString
			createdAt                          time.Time
		)

		record := &secondary.AssignmentLogRecord{}
		err := rows.Scan(
			&record.ID, &record.JobID, &record.FromStatus, &record.ToStatus,
			&prevClerk, &newClerk, &record.ActionType, &actor, &reason, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment log: %w", err)
		}

		record.PreviousClerkID = prevClerk.String
		record.NewClerkID = newClerk.String
		record.ActorUserID = actor.String
		record.Reason = reason.String
		record.CreatedAt = formatTime(createdAt)

		logs = append(logs, record)
	}

	return logs, rows.Err()
}

// Ensure AssignmentLogRepository implements the interface
var _ secondary.AssignmentLogRepository = (*AssignmentLogRepository)(nil)
