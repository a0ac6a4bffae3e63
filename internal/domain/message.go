package domain

import (
	"context"
	"time"
)

// Message is a directed message between two users. After creation only
// IsRead and IsDeleted ever change; sender, receiver, content and sent_at
// are write-once.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
	IsRead     bool      `json:"is_read"`
	IsDeleted  bool      `json:"is_deleted"`
}

// MessageRepository defines data access methods for messages. The store
// assigns both the id and sent_at at insert time; conversation and unread
// views exclude soft-deleted rows.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	GetConversation(ctx context.Context, userA, userB int64) ([]Message, error)
	GetPartners(ctx context.Context, userID int64) ([]User, error)
	GetUnread(ctx context.Context, userID int64) ([]Message, error)
	MarkAsRead(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
}

// MessagePublisher pushes a freshly stored message to the receiver's live
// session, if one exists. Delivery is best-effort; an absent subscriber is
// a normal outcome, not an error.
type MessagePublisher interface {
	Publish(receiverID int64, msg *Message)
}

// MessageUsecase defines business logic for direct messaging
type MessageUsecase interface {
	Send(ctx context.Context, senderID, receiverID int64, content string) (*Message, error)
	GetConversation(ctx context.Context, userA, userB int64) ([]Message, error)
	GetPartners(ctx context.Context, userID int64) ([]User, error)
	GetUnread(ctx context.Context, userID int64) ([]Message, error)
	MarkAsRead(ctx context.Context, messageID int64) error
	DeleteMessage(ctx context.Context, messageID int64) error
}
