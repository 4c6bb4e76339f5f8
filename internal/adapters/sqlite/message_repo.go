package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// MessageRepository implements secondary.MessageRepository with SQLite.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a new message.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	if message.ID == "" {
		return fmt.Errorf("message ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, job_id, sender_id, content, attachment_url, is_system_message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		message.ID, message.JobID, nullString(message.SenderID),
		message.Content, nullString(message.AttachmentURL), message.IsSystemMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListByJob retrieves a job's messages, oldest first.
func (r *MessageRepository) ListByJob(ctx context.Context, jobID string) ([]*secondary.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, sender_id, content, attachment_url, is_system_message, sent_at
		 FROM chat_messages WHERE job_id = ? ORDER BY sent_at ASC, id ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*secondary.MessageRecord
	for rows.Next() {
		var (
			sender, attachment sql.NullString
			sentAt             time.Time
		)

		record := &secondary.MessageRecord{}
		err := rows.Scan(
			&record.ID, &record.JobID, &sender, &record.Content,
			&attachment, &record.IsSystemMessage, &sentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		record.SenderID = sender.String
		record.AttachmentURL = attachment.String
		record.SentAt = formatTime(sentAt)

		messages = append(messages, record)
	}

	return messages, rows.Err()
}

// Ensure MessageRepository implements the interface
var _ secondary.MessageRepository = (*MessageRepository)(nil)
