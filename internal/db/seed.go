package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: an admin,
// two on-shift clerks with live locations, an agent, two properties and one
// unassigned job.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	users := []struct {
		id, email, name, role string
		onShift               bool
		lat, lng              float64
	}{
		{"user-admin-1", "ops@fieldops.example", "Dana Ops", "admin", false, 0, 0},
		{"user-clerk-1", "kam@fieldops.example", "Kam Patel", "clerk", true, 51.5072, -0.1276},
		{"user-clerk-2", "rosa@fieldops.example", "Rosa Lindqvist", "clerk", true, 51.5155, -0.0922},
		{"user-agent-1", "lettings@fieldops.example", "Avery Cole", "agent", false, 0, 0},
	}
	for _, u := range users {
		var lat, lng interface{}
		if u.role == "clerk" {
			lat, lng = u.lat, u.lng
		}
		if _, err := database.Exec(
			`INSERT INTO users (id, email, full_name, role, is_active, is_on_shift, current_lat, current_lng, created_at)
			 VALUES (?, ?, ?, ?, 1, ?, ?, ?, ?)`,
			u.id, u.email, u.name, u.role, u.onShift, lat, lng, now,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	properties := []struct {
		id, ref, addr, city, postcode string
		lat, lng                      float64
	}{
		{"prop-1", "FO-1001", "14 Rivergate Walk", "London", "SW1A 2AB", 51.5034, -0.1276},
		{"prop-2", "FO-1002", "3 Harbour Yard", "London", "E14 9GE", 51.5054, -0.0235},
	}
	for _, p := range properties {
		if _, err := database.Exec(
			`INSERT INTO properties (id, reference_number, address_line_1, city, postcode, latitude, longitude, is_active, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`,
			p.id, p.ref, p.addr, p.city, p.postcode, p.lat, p.lng, now,
		); err != nil {
			return fmt.Errorf("seed properties: %w", err)
		}
	}

	appointment := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	if _, err := database.Exec(
		`INSERT INTO jobs (id, property_id, created_by_user_id, job_type, priority, appointment_date, status, created_at)
		 VALUES (?, ?, ?, 'inspection', 'normal', ?, 'created', ?)`,
		"job-seed-1", "prop-1", "user-agent-1", appointment, now,
	); err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}

	return nil
}
