package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/fieldops/internal/adapters/sqlite"
	"github.com/example/fieldops/internal/ports/secondary"
)

func TestAvailabilityRepositoryUpsert(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "clerk-1", "clerk")

	repo := sqlite.NewAvailabilityRepository(database)
	ctx := context.Background()

	first := &secondary.AvailabilityRecord{
		ID:            "avail-1",
		UserID:        "clerk-1",
		AvailableDate: "2026-09-01",
		IsAvailable:   true,
		StartTime:     "08:00",
		EndTime:       "18:00",
		Postcode:      "SW1A 1AA",
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	// Filing again for the same date replaces the window, not appends.
	second := &secondary.AvailabilityRecord{
		ID:            "avail-2",
		UserID:        "clerk-1",
		AvailableDate: "2026-09-01",
		IsAvailable:   false,
		StartTime:     "08:00",
		EndTime:       "18:00",
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error: %v", err)
	}

	records, err := repo.ListByUser(ctx, "clerk-1", 0)
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after upsert, got %d", len(records))
	}
	if records[0].IsAvailable {
		t.Error("expected the replacement record to be unavailable")
	}
}

func TestAvailabilityRepositoryGetByUserAndDate(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "clerk-1", "clerk")

	repo := sqlite.NewAvailabilityRepository(database)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &secondary.AvailabilityRecord{
		ID:            "avail-1",
		UserID:        "clerk-1",
		AvailableDate: "2026-09-01",
		IsAvailable:   true,
		StartTime:     "08:00",
		EndTime:       "18:00",
	}); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := repo.GetByUserAndDate(ctx, "clerk-1", "2026-09-01")
	if err != nil {
		t.Fatalf("GetByUserAndDate() error: %v", err)
	}
	if got == nil || !got.IsAvailable {
		t.Errorf("GetByUserAndDate() = %v, want available record", got)
	}

	// No record filed means nil, not an error.
	missing, err := repo.GetByUserAndDate(ctx, "clerk-1", "2026-09-02")
	if err != nil {
		t.Fatalf("GetByUserAndDate() error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unfiled date, got %v", missing)
	}
}

func TestAvailabilityRepositoryDelete(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "clerk-1", "clerk")

	repo := sqlite.NewAvailabilityRepository(database)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &secondary.AvailabilityRecord{
		ID:            "avail-1",
		UserID:        "clerk-1",
		AvailableDate: "2026-09-01",
		IsAvailable:   true,
		StartTime:     "08:00",
		EndTime:       "18:00",
	}); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	if err := repo.Delete(ctx, "clerk-1", "2026-09-01"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	got, err := repo.GetByUserAndDate(ctx, "clerk-1", "2026-09-01")
	if err != nil {
		t.Fatalf("GetByUserAndDate() error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}
