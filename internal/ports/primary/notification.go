package primary

import "context"

// NotificationService defines the primary port for notification operations.
type NotificationService interface {
	// ListNotifications retrieves a user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*Notification, error)

	// MarkRead marks a single notification read.
	MarkRead(ctx context.Context, notificationID string) error

	// MarkAllRead marks all of a user's notifications read.
	MarkAllRead(ctx context.Context, userID string) error

	// UnreadCount counts a user's unread notifications.
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// Notification is the notification representation exposed to the driving layer.
type Notification struct {
	ID           string
	UserID       string
	RelatedJobID string
	Type         string
	Title        string
	Body         string
	Channel      string
	IsRead       bool
	CreatedAt    string
}
