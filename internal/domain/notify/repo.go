package notify

import (
	"context"
	"time"
)

// AlertRepository persists alerts and their per-recipient acknowledgment links.
type AlertRepository interface {
	Create(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id int64) (*Alert, error)
	ListByRecipient(ctx context.Context, recipientType string, recipientID int64, limit, offset int) ([]*Alert, int, error)
	AddRecipient(ctx context.Context, r *AlertRecipient) error
	Acknowledge(ctx context.Context, alertID int64, recipientType string, recipientID int64, at time.Time) error
	CountUnacknowledged(ctx context.Context, recipientType string, recipientID int64) (int64, error)
}

// MessageRepository persists messages and their per-recipient read links.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	ListByRecipient(ctx context.Context, recipientType string, recipientID int64, limit, offset int) ([]*Message, int, error)
	AddRecipient(ctx context.Context, r *MessageRecipient) error
	MarkRead(ctx context.Context, messageID int64, recipientType string, recipientID int64, at time.Time) error
	CountUnread(ctx context.Context, recipientType string, recipientID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
