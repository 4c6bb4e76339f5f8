package primary

import "context"

// MessageService defines the primary port for job chat messages.
type MessageService interface {
	// SendMessage posts a message to a job's chat.
	SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error)

	// ListMessages retrieves a job's messages, oldest first.
	ListMessages(ctx context.Context, jobID string) ([]*Message, error)
}

// Message is the message representation exposed to the driving layer.
type Message struct {
	ID              string
	JobID           string
	SenderID        string
	Content         string
	AttachmentURL   string
	IsSystemMessage bool
	SentAt          string
}

// SendMessageRequest contains parameters for posting a message.
type SendMessageRequest struct {
	JobID         string
	Content       string
	AttachmentURL string
}
