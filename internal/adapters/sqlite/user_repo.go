package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, full_name, phone_number, role, is_active, is_on_shift,
	current_lat, current_lng, last_location_update, address_line_1, city, postcode, created_at, updated_at`

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	if user.ID == "" {
		return fmt.Errorf("user ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, phone_number, role, is_active, address_line_1, city, postcode)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?)`,
		user.ID, user.Email, user.FullName, nullString(user.PhoneNumber), user.Role,
		nullString(user.AddressLine1), nullString(user.City), nullString(user.Postcode),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return record, nil
}

// List retrieves users matching the given filters.
func (r *UserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	query := "SELECT " + userColumns + " FROM users"
	args := []any{}
	where := ""

	appendCond := func(cond string, condArgs ...any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, condArgs...)
	}

	if filters.Role != "" {
		appendCond("role = ?", filters.Role)
	}
	if filters.ActiveOnly {
		appendCond("is_active = 1")
	}
	if filters.OnShiftOnly {
		appendCond("is_on_shift = 1")
	}

	query += where + " ORDER BY full_name ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		record, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, record)
	}

	return users, rows.Err()
}

// Update updates profile fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *secondary.UserRecord) error {
	query := "UPDATE users SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if user.FullName != "" {
		query += ", full_name = ?"
		args = append(args, user.FullName)
	}
	if user.PhoneNumber != "" {
		query += ", phone_number = ?"
		args = append(args, user.PhoneNumber)
	}
	if user.AddressLine1 != "" {
		query += ", address_line_1 = ?"
		args = append(args, user.AddressLine1)
	}
	if user.City != "" {
		query += ", city = ?"
		args = append(args, user.City)
	}
	if user.Postcode != "" {
		query += ", postcode = ?"
		args = append(args, user.Postcode)
	}

	query += " WHERE id = ?"
	args = append(args, user.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}

	return nil
}

// SetShift flips a clerk's on-shift flag.
func (r *UserRepository) SetShift(ctx context.Context, id string, onShift bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_on_shift = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		onShift, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set shift: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

// UpdateLocation records a clerk's live location.
func (r *UserRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET current_lat = ?, current_lng = ?, last_location_update = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		lat, lng, formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

// Deactivate marks a user inactive without deleting history.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_active = 0, is_on_shift = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

func scanUser(s scanner) (*secondary.UserRecord, error) {
	var (
		phone, addr, city, postcode sql.NullString
		lat, lng                    sql.NullFloat64
		lastLocation                sql.NullTime
		createdAt, updatedAt        time.Time
	)

	record := &secondary.UserRecord{}
	err := s.Scan(
		&record.ID, &record.Email, &record.FullName, &phone, &record.Role,
		&record.IsActive, &record.IsOnShift,
		&lat, &lng, &lastLocation, &addr, &city, &postcode, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.PhoneNumber = phone.String
	record.AddressLine1 = addr.String
	record.City = city.String
	record.Postcode = postcode.String
	record.CurrentLat = floatPtr(lat)
	record.CurrentLng = floatPtr(lng)
	record.LastLocationUpdate = formatNullTime(lastLocation)
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)

	return record, nil
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
