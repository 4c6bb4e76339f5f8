package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// AvailabilityRepository implements secondary.AvailabilityRepository with SQLite.
type AvailabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new SQLite availability repository.
func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const availabilityColumns = `id, user_id, available_date, is_available, start_time, end_time, postcode, notes, created_at, updated_at`

// Upsert creates or replaces the record for (user, date).
func (r *AvailabilityRepository) Upsert(ctx context.Context, record *secondary.AvailabilityRecord) error {
	if record.ID == "" {
		return fmt.Errorf("availability ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clerk_availability (id, user_id, available_date, is_available, start_time, end_time, postcode, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, available_date) DO UPDATE SET
			is_available = excluded.is_available,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			postcode = excluded.postcode,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`,
		record.ID, record.UserID, record.AvailableDate, record.IsAvailable,
		record.StartTime, record.EndTime, nullString(record.Postcode), nullString(record.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}

	return nil
}

// ListByUser retrieves a clerk's availability records, soonest first.
func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*secondary.AvailabilityRecord, error) {
	query := "SELECT " + availabilityColumns + " FROM clerk_availability WHERE user_id = ? ORDER BY available_date ASC"
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()

	var records []*secondary.AvailabilityRecord
	for rows.Next() {
		record, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetByUserAndDate retrieves the record for a specific date, nil when none
// was filed.
func (r *AvailabilityRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*secondary.AvailabilityRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+availabilityColumns+" FROM clerk_availability WHERE user_id = ? AND available_date = ?",
		userID, date,
	)

	record, err := scanAvailability(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	return record, nil
}

// Delete removes the record for (user, date).
func (r *AvailabilityRepository) Delete(ctx context.Context, userID, date string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM clerk_availability WHERE user_id = ? AND available_date = ?",
		userID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("no availability record for %s on %s", userID, date)
	}

	return nil
}

func scanAvailability(s scanner) (*secondary.AvailabilityRecord, error) {
	var (
		postcode, notes      sql.NullString
		createdAt, updatedAt time.Time
	)

	record := &secondary.AvailabilityRecord{}
	err := s.Scan(
		&record.ID, &record.UserID, &record.AvailableDate, &record.IsAvailable,
		&record.StartTime, &record.EndTime, &postcode, &notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Postcode = postcode.String
	record.Notes = notes.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)

	return record, nil
}

// Ensure AvailabilityRepository implements the interface
var _ secondary.AvailabilityRepository = (*AvailabilityRepository)(nil)
