// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test
// files; use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/fieldops/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository
// tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id, role string) string {
	t.Helper()
	if id == "" {
		id = "user-001"
	}
	if role == "" {
		role = "clerk"
	}
	_, err := db.Exec(
		"INSERT INTO users (id, email, full_name, role, is_active) VALUES (?, ?, ?, ?, 1)",
		id, id+"@test.example", "Test "+id, role,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedProperty inserts a test property and returns its ID.
func seedProperty(t *testing.T, db *sql.DB, id, postcode string) string {
	t.Helper()
	if id == "" {
		id = "prop-001"
	}
	if postcode == "" {
		postcode = "SW1A 1AA"
	}
	_, err := db.Exec(
		"INSERT INTO properties (id, postcode, is_active) VALUES (?, ?, 1)",
		id, postcode,
	)
	if err != nil {
		t.Fatalf("failed to seed property: %v", err)
	}
	return id
}

// seedJob inserts a test job and returns its ID.
func seedJob(t *testing.T, db *sql.DB, id, propertyID, status, clerkID string) string {
	t.Helper()
	if id == "" {
		id = "job-001"
	}
	if propertyID == "" {
		propertyID = "prop-001"
	}
	if status == "" {
		status = "created"
	}
	appointment := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)

	var clerk interface{}
	if clerkID != "" {
		clerk = clerkID
	}
	_, err := db.Exec(
		"INSERT INTO jobs (id, property_id, assigned_clerk_id, appointment_date, status) VALUES (?, ?, ?, ?, ?)",
		id, propertyID, clerk, appointment, status,
	)
	if err != nil {
		t.Fatalf("failed to seed job: %v", err)
	}
	return id
}
