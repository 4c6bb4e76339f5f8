package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/fieldops/internal/adapters/sqlite"
	corejob "github.com/example/fieldops/internal/core/job"
	"github.com/example/fieldops/internal/ports/secondary"
)

func TestJobRepositoryCreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "user-agent", "agent")
	seedProperty(t, database, "prop-001", "")

	repo := sqlite.NewJobRepository(database)
	ctx := context.Background()

	record := &secondary.JobRecord{
		ID:                "job-100",
		PropertyID:        "prop-001",
		CreatedByUserID:   "user-agent",
		JobType:           "inspection",
		Priority:          "normal",
		AppointmentDate:   time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
		EstimatedDuration: 90,
		Status:            "created",
	}

	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.GetByID(ctx, "job-100")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Status != "created" {
		t.Errorf("Status = %q, want created", got.Status)
	}
	if got.AssignedClerkID != "" {
		t.Errorf("AssignedClerkID = %q, want empty for created job", got.AssignedClerkID)
	}
	if got.EstimatedDuration != 90 {
		t.Errorf("EstimatedDuration = %d, want 90", got.EstimatedDuration)
	}
	if got.StartTime != "" || got.CheckInTime != "" || got.CompleteTime != "" {
		t.Error("lifecycle timestamps should be unset on a created job")
	}
}

func TestJobRepositoryGetByIDNotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewJobRepository(database)

	_, err := repo.GetByID(context.Background(), "job-missing")
	if !errors.Is(err, corejob.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestJobRepositoryTransitionAppendsLog(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "user-clerk", "clerk")
	seedUser(t, database, "user-admin", "admin")
	seedProperty(t, database, "prop-001", "")
	seedJob(t, database, "job-100", "prop-001", "created", "")

	repo := sqlite.NewJobRepository(database)
	logs := sqlite.NewAssignmentLogRepository(database)
	ctx := context.Background()

	err := repo.Transition(ctx, secondary.TransitionUpdate{
		JobID:              "job-100",
		FromStatus:         "created",
		ToStatus:           "assigned",
		SetAssignedClerkID: "user-clerk",
		Log: secondary.AssignmentLogRecord{
			ID:          "log-1",
			ActionType:  "MANUAL_OVERRIDE",
			NewClerkID:  "user-clerk",
			ActorUserID: "user-admin",
			Reason:      "admin assignment",
		},
	})
	if err != nil {
		t.Fatalf("Transition() error: %v", err)
	}

	got, err := repo.GetByID(ctx, "job-100")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Status != "assigned" {
		t.Errorf("Status = %q, want assigned", got.Status)
	}
	if got.AssignedClerkID != "user-clerk" {
		t.Errorf("AssignedClerkID = %q, want user-clerk", got.AssignedClerkID)
	}

	count, err := logs.CountByJob(ctx, "job-100")
	if err != nil {
		t.Fatalf("CountByJob() error: %v", err)
	}
	if count != 1 {
		t.Errorf("assignment log count = %d, want 1", count)
	}

	entries, err := logs.ListByJob(ctx, "job-100")
	if err != nil {
		t.Fatalf("ListByJob() error: %v", err)
	}
	if entries[0].FromStatus != "created" || entries[0].ToStatus != "assigned" {
		t.Errorf("log transition = %s→%s, want created→assigned", entries[0].FromStatus, entries[0].ToStatus)
	}
	if entries[0].ActorUserID != "user-admin" {
		t.Errorf("log actor = %q, want user-admin", entries[0].ActorUserID)
	}
}

func TestJobRepositoryTransitionConflict(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "user-clerk", "clerk")
	seedProperty(t, database, "prop-001", "")
	seedJob(t, database, "job-100", "prop-001", "created", "")

	repo := sqlite.NewJobRepository(database)
	logs := sqlite.NewAssignmentLogRepository(database)
	ctx := context.Background()

	first := secondary.TransitionUpdate{
		JobID:              "job-100",
		FromStatus:         "created",
		ToStatus:           "assigned",
		SetAssignedClerkID: "user-clerk",
		Log:                secondary.AssignmentLogRecord{ID: "log-1", ActionType: "MANUAL_OVERRIDE"},
	}
	if err := repo.Transition(ctx, first); err != nil {
		t.Fatalf("first Transition() error: %v", err)
	}

	// A second writer read the job as created and lost the race.
	second := first
	second.Log.ID = "log-2"
	err := repo.Transition(ctx, second)
	if !errors.Is(err, corejob.ErrPersistenceConflict) {
		t.Fatalf("second Transition() error = %v, want ErrPersistenceConflict", err)
	}

	// The losing attempt must leave no audit entry behind.
	count, err := logs.CountByJob(ctx, "job-100")
	if err != nil {
		t.Fatalf("CountByJob() error: %v", err)
	}
	if count != 1 {
		t.Errorf("assignment log count = %d, want 1 after lost race", count)
	}
}

func TestJobRepositoryTransitionNotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewJobRepository(database)

	err := repo.Transition(context.Background(), secondary.TransitionUpdate{
		JobID:      "job-missing",
		FromStatus: "created",
		ToStatus:   "assigned",
		Log:        secondary.AssignmentLogRecord{ID: "log-1", ActionType: "MANUAL_OVERRIDE"},
	})
	if !errors.Is(err, corejob.ErrNotFound) {
		t.Errorf("Transition() error = %v, want ErrNotFound", err)
	}
}

func TestJobRepositoryTransitionSetsTimestampOnce(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "user-clerk", "clerk")
	seedProperty(t, database, "prop-001", "")
	seedJob(t, database, "job-100", "prop-001", "assigned", "user-clerk")

	repo := sqlite.NewJobRepository(database)
	ctx := context.Background()

	startTime := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC).Format(time.RFC3339)
	err := repo.Transition(ctx, secondary.TransitionUpdate{
		JobID:      "job-100",
		FromStatus: "assigned",
		ToStatus:   "in_progress",
		StartTime:  startTime,
		Log:        secondary.AssignmentLogRecord{ID: "log-1", ActionType: "LIFECYCLE"},
	})
	if err != nil {
		t.Fatalf("Transition() error: %v", err)
	}

	got, err := repo.GetByID(ctx, "job-100")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.StartTime != startTime {
		t.Errorf("StartTime = %q, want %q", got.StartTime, startTime)
	}
}

func TestJobRepositoryCountActiveByClerk(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "user-clerk", "clerk")
	seedProperty(t, database, "prop-001", "")
	seedJob(t, database, "job-1", "prop-001", "assigned", "user-clerk")
	seedJob(t, database, "job-2", "prop-001", "in_progress", "user-clerk")
	seedJob(t, database, "job-3", "prop-001", "completed", "user-clerk")
	seedJob(t, database, "job-4", "prop-001", "created", "")

	repo := sqlite.NewJobRepository(database)

	count, err := repo.CountActiveByClerk(context.Background(), "user-clerk")
	if err != nil {
		t.Fatalf("CountActiveByClerk() error: %v", err)
	}
	if count != 2 {
		t.Errorf("CountActiveByClerk() = %d, want 2", count)
	}
}

func TestJobRepositoryLatestCompletedClerkForProperty(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "clerk-old", "clerk")
	seedUser(t, database, "clerk-new", "clerk")
	seedProperty(t, database, "prop-001", "")
	seedJob(t, database, "job-old", "prop-001", "completed", "clerk-old")
	seedJob(t, database, "job-new", "prop-001", "completed", "clerk-new")

	// Give the jobs distinct completion times.
	for id, ts := range map[string]string{
		"job-old": "2026-08-01T10:00:00Z",
		"job-new": "2026-08-15T10:00:00Z",
	} {
		if _, err := database.Exec("UPDATE jobs SET complete_time = ? WHERE id = ?", ts, id); err != nil {
			t.Fatalf("failed to set complete_time: %v", err)
		}
	}

	repo := sqlite.NewJobRepository(database)

	clerkID, err := repo.LatestCompletedClerkForProperty(context.Background(), "prop-001")
	if err != nil {
		t.Fatalf("LatestCompletedClerkForProperty() error: %v", err)
	}
	if clerkID != "clerk-new" {
		t.Errorf("LatestCompletedClerkForProperty() = %q, want clerk-new", clerkID)
	}

	clerkID, err = repo.LatestCompletedClerkForProperty(context.Background(), "prop-none")
	if err != nil {
		t.Fatalf("LatestCompletedClerkForProperty() error: %v", err)
	}
	if clerkID != "" {
		t.Errorf("LatestCompletedClerkForProperty() = %q, want empty", clerkID)
	}
}

func TestJobRepositoryListFilters(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "user-clerk", "clerk")
	seedProperty(t, database, "prop-001", "")
	seedProperty(t, database, "prop-002", "E14 9GE")
	seedJob(t, database, "job-1", "prop-001", "created", "")
	seedJob(t, database, "job-2", "prop-001", "assigned", "user-clerk")
	seedJob(t, database, "job-3", "prop-002", "assigned", "user-clerk")

	repo := sqlite.NewJobRepository(database)
	ctx := context.Background()

	byStatus, err := repo.List(ctx, secondary.JobFilters{Status: "assigned"})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(byStatus) != 2 {
		t.Errorf("List(status=assigned) returned %d jobs, want 2", len(byStatus))
	}

	byProperty, err := repo.List(ctx, secondary.JobFilters{PropertyID: "prop-002"})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(byProperty) != 1 || byProperty[0].ID != "job-3" {
		t.Errorf("List(property=prop-002) = %v, want [job-3]", byProperty)
	}

	byClerk, err := repo.List(ctx, secondary.JobFilters{ClerkID: "user-clerk", Status: "assigned"})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(byClerk) != 2 {
		t.Errorf("List(clerk, assigned) returned %d jobs, want 2", len(byClerk))
	}
}
