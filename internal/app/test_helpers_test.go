package app

import (
	"context"
	"fmt"
	"sort"

	corejob "github.com/example/fieldops/internal/core/job"
	"github.com/example/fieldops/internal/ports/secondary"
)

// Ensure the mocks implement the secondary ports.
var (
	_ secondary.JobRepository           = (*mockJobRepository)(nil)
	_ secondary.AssignmentLogRepository = (*mockAssignmentLogRepository)(nil)
	_ secondary.UserRepository          = (*mockUserRepository)(nil)
	_ secondary.PropertyRepository      = (*mockPropertyRepository)(nil)
	_ secondary.AvailabilityRepository  = (*mockAvailabilityRepository)(nil)
	_ secondary.NotificationRepository  = (*mockNotificationRepository)(nil)
	_ secondary.Notifier                = (*mockNotifier)(nil)
)

// mockJobRepository implements secondary.JobRepository for testing. Its
// Transition mirrors the real adapter's semantics: the status update is
// conditional on FromStatus, and the log entry is appended with the same
// call.
type mockJobRepository struct {
	jobs map[string]*secondary.JobRecord
	logs *mockAssignmentLogRepository

	previousClerks map[string]string // propertyID -> clerkID

	transitionErr error
	getErr        error
}

func newMockJobRepository(logs *mockAssignmentLogRepository) *mockJobRepository {
	return &mockJobRepository{
		jobs:           make(map[string]*secondary.JobRecord),
		logs:           logs,
		previousClerks: make(map[string]string),
	}
}

func (m *mockJobRepository) Create(ctx context.Context, job *secondary.JobRecord) error {
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *mockJobRepository) GetByID(ctx context.Context, id string) (*secondary.JobRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	job, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, corejob.ErrNotFound)
	}
	copied := *job
	return &copied, nil
}

func (m *mockJobRepository) List(ctx context.Context, filters secondary.JobFilters) ([]*secondary.JobRecord, error) {
	ids := make([]string, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []*secondary.JobRecord
	for _, id := range ids {
		job := m.jobs[id]
		if filters.Status != "" && job.Status != filters.Status {
			continue
		}
		if filters.ClerkID != "" && job.AssignedClerkID != filters.ClerkID {
			continue
		}
		if filters.PropertyID != "" && job.PropertyID != filters.PropertyID {
			continue
		}
		copied := *job
		result = append(result, &copied)
	}
	return result, nil
}

func (m *mockJobRepository) Transition(ctx context.Context, update secondary.TransitionUpdate) error {
	if m.transitionErr != nil {
		return m.transitionErr
	}

	job, ok := m.jobs[update.JobID]
	if !ok {
		return fmt.Errorf("job %s: %w", update.JobID, corejob.ErrNotFound)
	}
	if job.Status != update.FromStatus {
		return fmt.Errorf("job %s is no longer in status %q: %w", update.JobID, update.FromStatus, corejob.ErrPersistenceConflict)
	}

	job.Status = update.ToStatus
	if update.SetAssignedClerkID != "" {
		job.AssignedClerkID = update.SetAssignedClerkID
	}
	if update.ClearAssignedClerk {
		job.AssignedClerkID = ""
	}
	if update.StartTime != "" && job.StartTime == "" {
		job.StartTime = update.StartTime
	}
	if update.CheckInTime != "" && job.CheckInTime == "" {
		job.CheckInTime = update.CheckInTime
	}
	if update.CompleteTime != "" && job.CompleteTime == "" {
		job.CompleteTime = update.CompleteTime
	}
	if update.CheckInLat != nil {
		job.CheckInLat = update.CheckInLat
	}
	if update.CheckInLng != nil {
		job.CheckInLng = update.CheckInLng
	}
	if update.SetLocationWarning != nil {
		job.LocationWarningFlag = *update.SetLocationWarning
	}

	log := update.Log
	log.JobID = update.JobID
	log.FromStatus = update.FromStatus
	log.ToStatus = update.ToStatus
	m.logs.entries = append(m.logs.entries, &log)

	return nil
}

func (m *mockJobRepository) CountActiveByClerk(ctx context.Context, clerkID string) (int, error) {
	count := 0
	for _, job := range m.jobs {
		if job.AssignedClerkID != clerkID {
			continue
		}
		switch job.Status {
		case "assigned", "in_progress", "checked_in":
			count++
		}
	}
	return count, nil
}

func (m *mockJobRepository) LatestCompletedClerkForProperty(ctx context.Context, propertyID string) (string, error) {
	return m.previousClerks[propertyID], nil
}

// mockAssignmentLogRepository implements secondary.AssignmentLogRepository
// for testing. Entries are appended by mockJobRepository.Transition.
type mockAssignmentLogRepository struct {
	entries []*secondary.AssignmentLogRecord
}

func newMockAssignmentLogRepository() *mockAssignmentLogRepository {
	return &mockAssignmentLogRepository{}
}

func (m *mockAssignmentLogRepository) ListByJob(ctx context.Context, jobID string) ([]*secondary.AssignmentLogRecord, error) {
	var result []*secondary.AssignmentLogRecord
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].JobID == jobID {
			result = append(result, m.entries[i])
		}
	}
	return result, nil
}

func (m *mockAssignmentLogRepository) List(ctx context.Context, limit int) ([]*secondary.AssignmentLogRecord, error) {
	var result []*secondary.AssignmentLogRecord
	for i := len(m.entries) - 1; i >= 0; i-- {
		result = append(result, m.entries[i])
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *mockAssignmentLogRepository) CountByJob(ctx context.Context, jobID string) (int, error) {
	count := 0
	for _, e := range m.entries {
		if e.JobID == jobID {
			count++
		}
	}
	return count, nil
}

// mockUserRepository implements secondary.UserRepository for testing.
type mockUserRepository struct {
	users map[string]*secondary.UserRecord
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*secondary.UserRecord)}
}

// addUser seeds an active user with the given role.
func (m *mockUserRepository) addUser(id, role string) *secondary.UserRecord {
	user := &secondary.UserRecord{
		ID:       id,
		Email:    id + "@test.example",
		FullName: "Test " + id,
		Role:     role,
		IsActive: true,
	}
	m.users[id] = user
	return user
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return user, nil
}

func (m *mockUserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []*secondary.UserRecord
	for _, id := range ids {
		user := m.users[id]
		if filters.Role != "" && user.Role != filters.Role {
			continue
		}
		if filters.ActiveOnly && !user.IsActive {
			continue
		}
		if filters.OnShiftOnly && !user.IsOnShift {
			continue
		}
		result = append(result, user)
	}
	return result, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *secondary.UserRecord) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) SetShift(ctx context.Context, id string, onShift bool) error {
	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	user.IsOnShift = onShift
	return nil
}

func (m *mockUserRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	user.CurrentLat = &lat
	user.CurrentLng = &lng
	return nil
}

func (m *mockUserRepository) Deactivate(ctx context.Context, id string) error {
	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	user.IsActive = false
	return nil
}

// mockPropertyRepository implements secondary.PropertyRepository for testing.
type mockPropertyRepository struct {
	properties map[string]*secondary.PropertyRecord
}

func newMockPropertyRepository() *mockPropertyRepository {
	return &mockPropertyRepository{properties: make(map[string]*secondary.PropertyRecord)}
}

func (m *mockPropertyRepository) addProperty(id, postcode string) *secondary.PropertyRecord {
	property := &secondary.PropertyRecord{
		ID:       id,
		Postcode: postcode,
		IsActive: true,
	}
	m.properties[id] = property
	return property
}

func (m *mockPropertyRepository) Create(ctx context.Context, property *secondary.PropertyRecord) error {
	m.properties[property.ID] = property
	return nil
}

func (m *mockPropertyRepository) GetByID(ctx context.Context, id string) (*secondary.PropertyRecord, error) {
	property, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s not found", id)
	}
	return property, nil
}

func (m *mockPropertyRepository) List(ctx context.Context, filters secondary.PropertyFilters) ([]*secondary.PropertyRecord, error) {
	var result []*secondary.PropertyRecord
	for _, property := range m.properties {
		result = append(result, property)
	}
	return result, nil
}

func (m *mockPropertyRepository) Update(ctx context.Context, property *secondary.PropertyRecord) error {
	m.properties[property.ID] = property
	return nil
}

// mockAvailabilityRepository implements secondary.AvailabilityRepository for testing.
type mockAvailabilityRepository struct {
	records map[string]*secondary.AvailabilityRecord // keyed userID|date
}

func newMockAvailabilityRepository() *mockAvailabilityRepository {
	return &mockAvailabilityRepository{records: make(map[string]*secondary.AvailabilityRecord)}
}

func availabilityKey(userID, date string) string {
	return userID + "|" + date
}

func (m *mockAvailabilityRepository) Upsert(ctx context.Context, record *secondary.AvailabilityRecord) error {
	m.records[availabilityKey(record.UserID, record.AvailableDate)] = record
	return nil
}

func (m *mockAvailabilityRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*secondary.AvailabilityRecord, error) {
	var result []*secondary.AvailabilityRecord
	for _, record := range m.records {
		if record.UserID == userID {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AvailableDate < result[j].AvailableDate
	})
	return result, nil
}

func (m *mockAvailabilityRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*secondary.AvailabilityRecord, error) {
	return m.records[availabilityKey(userID, date)], nil
}

func (m *mockAvailabilityRepository) Delete(ctx context.Context, userID, date string) error {
	delete(m.records, availabilityKey(userID, date))
	return nil
}

// mockNotificationRepository implements secondary.NotificationRepository for testing.
type mockNotificationRepository struct {
	notifications []*secondary.NotificationRecord
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{}
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *secondary.NotificationRecord) error {
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID string, filters secondary.NotificationFilters) ([]*secondary.NotificationRecord, error) {
	var result []*secondary.NotificationRecord
	for i := len(m.notifications) - 1; i >= 0; i-- {
		n := m.notifications[i]
		if n.UserID != userID {
			continue
		}
		if filters.UnreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	for _, n := range m.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %s not found", id)
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// mockNotifier implements secondary.Notifier for testing and records every
// dispatched event.
type mockNotifier struct {
	events      []secondary.TransitionEvent
	dispatchErr error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{}
}

func (m *mockNotifier) DispatchTransition(ctx context.Context, event secondary.TransitionEvent) error {
	m.events = append(m.events, event)
	return m.dispatchErr
}
