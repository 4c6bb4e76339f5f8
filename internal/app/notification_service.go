package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	notificationRepo secondary.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService with injected dependencies.
func NewNotificationService(notificationRepo secondary.NotificationRepository, logger zerolog.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger.With().Str("component", "notification_service").Logger(),
	}
}

// ListNotifications retrieves a user's notifications, newest first.
func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*primary.Notification, error) {
	records, err := s.notificationRepo.ListByUser(ctx, userID, secondary.NotificationFilters{
		UnreadOnly: unreadOnly,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*primary.Notification, 0, len(records))
	for _, r := range records {
		notifications = append(notifications, &primary.Notification{
			ID:           r.ID,
			UserID:       r.UserID,
			RelatedJobID: r.RelatedJobID,
			Type:         r.Type,
			Title:        r.Title,
			Body:         r.Body,
			Channel:      r.Channel,
			IsRead:       r.IsRead,
			CreatedAt:    r.CreatedAt,
		})
	}
	return notifications, nil
}

// MarkRead marks a single notification read.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, notificationID string) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks all of a user's notifications read.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// UnreadCount counts a user's unread notifications.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

var _ primary.NotificationService = (*NotificationServiceImpl)(nil)
