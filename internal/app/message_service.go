package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	corejob "github.com/example/fieldops/internal/core/job"
	"github.com/example/fieldops/internal/ctxutil"
	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// MessageServiceImpl implements the MessageService interface.
type MessageServiceImpl struct {
	messageRepo secondary.MessageRepository
	jobRepo     secondary.JobRepository
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService with injected dependencies.
func NewMessageService(
	messageRepo secondary.MessageRepository,
	jobRepo secondary.JobRepository,
	logger zerolog.Logger,
) *MessageServiceImpl {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		jobRepo:     jobRepo,
		logger:      logger.With().Str("component", "message_service").Logger(),
	}
}

// SendMessage posts a message to a job's chat.
func (s *MessageServiceImpl) SendMessage(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
	senderID := ctxutil.ActorFromContext(ctx)
	if senderID == "" {
		return nil, fmt.Errorf("no acting user in context: %w", corejob.ErrUnauthorizedActor)
	}
	if req.Content == "" && req.AttachmentURL == "" {
		return nil, fmt.Errorf("message needs content or an attachment")
	}

	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return nil, err
	}

	record := &secondary.MessageRecord{
		ID:            uuid.NewString(),
		JobID:         req.JobID,
		SenderID:      senderID,
		Content:       req.Content,
		AttachmentURL: req.AttachmentURL,
		SentAt:        time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.messageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return recordToMessage(record), nil
}

// ListMessages retrieves a job's messages, oldest first.
func (s *MessageServiceImpl) ListMessages(ctx context.Context, jobID string) ([]*primary.Message, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	records, err := s.messageRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*primary.Message, 0, len(records))
	for _, r := range records {
		messages = append(messages, recordToMessage(r))
	}
	return messages, nil
}

func recordToMessage(r *secondary.MessageRecord) *primary.Message {
	return &primary.Message{
		ID:              r.ID,
		JobID:           r.JobID,
		SenderID:        r.SenderID,
		Content:         r.Content,
		AttachmentURL:   r.AttachmentURL,
		IsSystemMessage: r.IsSystemMessage,
		SentAt:          r.SentAt,
	}
}

var _ primary.MessageService = (*MessageServiceImpl)(nil)
