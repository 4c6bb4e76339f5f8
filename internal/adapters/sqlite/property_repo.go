package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// PropertyRepository implements secondary.PropertyRepository with SQLite.
type PropertyRepository struct {
	db *sql.DB
}

// NewPropertyRepository creates a new SQLite property repository.
func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, reference_number, address_line_1, address_line_2, city, postcode,
	latitude, longitude, property_type, bedrooms, client_name, notes, is_active, created_at, updated_at`

// Create persists a new property.
func (r *PropertyRepository) Create(ctx context.Context, property *secondary.PropertyRecord) error {
	if property.ID == "" {
		return fmt.Errorf("property ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO properties (id, reference_number, address_line_1, address_line_2, city, postcode,
			latitude, longitude, property_type, bedrooms, client_name, notes, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		property.ID, nullString(property.ReferenceNumber),
		nullString(property.AddressLine1), nullString(property.AddressLine2),
		nullString(property.City), property.Postcode,
		nullFloat(property.Latitude), nullFloat(property.Longitude),
		nullString(property.PropertyType), property.Bedrooms,
		nullString(property.ClientName), nullString(property.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

// GetByID retrieves a property by ID.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*secondary.PropertyRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = ?", id)

	record, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return record, nil
}

// List retrieves properties matching the given filters.
func (r *PropertyRepository) List(ctx context.Context, filters secondary.PropertyFilters) ([]*secondary.PropertyRecord, error) {
	query := "SELECT " + propertyColumns + " FROM properties"
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

	if filters.Postcode != "" {
		appendCond("postcode = ?", filters.Postcode)
	}
	if filters.ActiveOnly {
		appendCond("is_active = 1")
	}

	query += where + " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []*secondary.PropertyRecord
	for rows.Next() {
		record, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, record)
	}

	return properties, rows.Err()
}

// Update updates an existing property.
func (r *PropertyRepository) Update(ctx context.Context, property *secondary.PropertyRecord) error {
	query := "UPDATE properties SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if property.AddressLine1 != "" {
		query += ", address_line_1 = ?"
		args = append(args, property.AddressLine1)
	}
	if property.City != "" {
		query += ", city = ?"
		args = append(args, property.City)
	}
	if property.Postcode != "" {
		query += ", postcode = ?"
		args = append(args, property.Postcode)
	}
	if property.Latitude != nil {
		query += ", latitude = ?"
		args = append(args, *property.Latitude)
	}
	if property.Longitude != nil {
		query += ", longitude = ?"
		args = append(args, *property.Longitude)
	}
	if property.Notes != "" {
		query += ", notes = ?"
		args = append(args, property.Notes)
	}

	query += " WHERE id = ?"
	args = append(args, property.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("property %s not found", property.ID)
	}

	return nil
}

func scanProperty(s scanner) (*secondary.PropertyRecord, error) {
	var (
		ref, addr1, addr2, city            sql.NullString
		propertyType, clientName, notes    sql.NullString
		lat, lng                           sql.NullFloat64
		createdAt, updatedAt               time.Time
	)

	record := &secondary.PropertyRecord{}
	err := s.Scan(
		&record.ID, &ref, &addr1, &addr2, &city, &record.Postcode,
		&lat, &lng, &propertyType, &record.Bedrooms, &clientName, &notes,
		&record.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ReferenceNumber = ref.String
	record.AddressLine1 = addr1.String
	record.AddressLine2 = addr2.String
	record.City = city.String
	record.PropertyType = propertyType.String
	record.ClientName = clientName.String
	record.Notes = notes.String
	record.Latitude = floatPtr(lat)
	record.Longitude = floatPtr(lng)
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)

	return record, nil
}

// Ensure PropertyRepository implements the interface
var _ secondary.PropertyRepository = (*PropertyRepository)(nil)
