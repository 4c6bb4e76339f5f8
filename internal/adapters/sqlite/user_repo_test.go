package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/fieldops/internal/adapters/sqlite"
	"github.com/example/fieldops/internal/ports/secondary"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewUserRepository(database)
	ctx := context.Background()

	record := &secondary.UserRecord{
		ID:       "user-100",
		Email:    "jo@test.example",
		FullName: "Jo Smith",
		Role:     "clerk",
		Postcode: "SW1A 1AA",
	}

	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.GetByID(ctx, "user-100")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.FullName != "Jo Smith" {
		t.Errorf("FullName = %q, want Jo Smith", got.FullName)
	}
	if !got.IsActive {
		t.Error("new users should be active")
	}
	if got.IsOnShift {
		t.Error("new users should be off shift")
	}
}

func TestUserRepositoryListFilters(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewUserRepository(database)
	ctx := context.Background()

	seedUser(t, database, "clerk-1", "clerk")
	seedUser(t, database, "clerk-2", "clerk")
	seedUser(t, database, "admin-1", "admin")

	if err := repo.SetShift(ctx, "clerk-1", true); err != nil {
		t.Fatalf("SetShift() error: %v", err)
	}

	clerks, err := repo.List(ctx, secondary.UserFilters{Role: "clerk"})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(clerks) != 2 {
		t.Errorf("List(role=clerk) returned %d users, want 2", len(clerks))
	}

	onShift, err := repo.List(ctx, secondary.UserFilters{Role: "clerk", OnShiftOnly: true})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(onShift) != 1 || onShift[0].ID != "clerk-1" {
		t.Errorf("List(on-shift) = %v, want [clerk-1]", onShift)
	}
}

func TestUserRepositoryUpdateLocation(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewUserRepository(database)
	ctx := context.Background()

	seedUser(t, database, "clerk-1", "clerk")

	if err := repo.UpdateLocation(ctx, "clerk-1", 51.5074, -0.1278); err != nil {
		t.Fatalf("UpdateLocation() error: %v", err)
	}

	got, err := repo.GetByID(ctx, "clerk-1")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.CurrentLat == nil || *got.CurrentLat != 51.5074 {
		t.Errorf("CurrentLat = %v, want 51.5074", got.CurrentLat)
	}
	if got.LastLocationUpdate == "" {
		t.Error("expected last location update to be recorded")
	}
}

func TestUserRepositoryDeactivate(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewUserRepository(database)
	ctx := context.Background()

	seedUser(t, database, "clerk-1", "clerk")

	if err := repo.Deactivate(ctx, "clerk-1"); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}

	got, err := repo.GetByID(ctx, "clerk-1")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.IsActive {
		t.Error("expected user to be inactive after Deactivate")
	}

	active, err := repo.List(ctx, secondary.UserFilters{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for _, u := range active {
		if u.ID == "clerk-1" {
			t.Error("deactivated user should not appear in active list")
		}
	}
}
