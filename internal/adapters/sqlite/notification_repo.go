package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// NotificationRepository implements secondary.NotificationRepository with SQLite.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new SQLite notification repository.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create persists a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *secondary.NotificationRecord) error {
	if n.ID == "" {
		return fmt.Errorf("notification ID must be pre-populated by service layer")
	}

	channel := n.Channel
	if channel == "" {
		channel = "in_app"
	}
	status := n.DeliveryStatus
	if status == "" {
		status = "sent"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, related_job_id, type, title, body, channel, delivery_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, nullString(n.RelatedJobID), n.Type, n.Title, nullString(n.Body), channel, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, filters secondary.NotificationFilters) ([]*secondary.NotificationRecord, error) {
	query := `SELECT id, user_id, related_job_id, type, title, body, channel, delivery_status, is_read, created_at
		FROM notifications WHERE user_id = ?`
	args := []any{userID}

	if filters.UnreadOnly {
		query += " AND is_read = 0"
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*secondary.NotificationRecord
	for rows.Next() {
		var (
			jobID, body sql.NullString
			createdAt   time.Time
		)

		record := &secondary.NotificationRecord{}
		err := rows.Scan(
			&record.ID, &record.UserID, &jobID, &record.Type, &record.Title,
			&body, &record.Channel, &record.DeliveryStatus, &record.IsRead, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		record.RelatedJobID = jobID.String
		record.Body = body.String
		record.CreatedAt = formatTime(createdAt)

		notifications = append(notifications, record)
	}

	return notifications, rows.Err()
}

// MarkRead marks a single notification read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("notification %s not found", id)
	}

	return nil
}

// MarkAllRead marks all of a user's notifications read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0",
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

// CountUnread counts a user's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// Ensure NotificationRepository implements the interface
var _ secondary.NotificationRepository = (*NotificationRepository)(nil)
