package usecase

import (
	"context"
	"errors"
	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/pkg/apperror"
)

type messageUsecase struct {
	messageRepo domain.MessageRepository
	userRepo    domain.UserRepository
	publisher   domain.MessagePublisher
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(
	messageRepo domain.MessageRepository,
	userRepo domain.UserRepository,
	publisher domain.MessagePublisher,
) domain.MessageUsecase {
	return &messageUsecase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// Send validates both parties, persists the message, and only then pushes it
// to the receiver's live session. The push happens strictly after the commit,
// so a notified message is always already retrievable. Content is stored
// as-is; empty content is accepted.
func (uc *messageUsecase) Send(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error) {
	if _, err := uc.userRepo.GetByID(ctx, senderID); err != nil {
		return nil, resolveErr(err, "Sender not found")
	}
	if _, err := uc.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, resolveErr(err, "Receiver not found")
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.publisher.Publish(receiverID, msg)

	return msg, nil
}

// GetConversation returns the merged chronological sequence between two
// users. Symmetric: the argument order does not affect the result.
func (uc *messageUsecase) GetConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	if _, err := uc.userRepo.GetByID(ctx, userA); err != nil {
		return nil, resolveErr(err, "User not found")
	}
	if _, err := uc.userRepo.GetByID(ctx, userB); err != nil {
		return nil, resolveErr(err, "User not found")
	}
	messages, err := uc.messageRepo.GetConversation(ctx, userA, userB)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return messages, nil
}

// GetPartners returns the distinct users this user has exchanged messages with
func (uc *messageUsecase) GetPartners(ctx context.Context, userID int64) ([]domain.User, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, resolveErr(err, "User not found")
	}
	partners, err := uc.messageRepo.GetPartners(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return partners, nil
}

// GetUnread returns unread messages addressed to the user
func (uc *messageUsecase) GetUnread(ctx context.Context, userID int64) ([]domain.Message, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, resolveErr(err, "User not found")
	}
	messages, err := uc.messageRepo.GetUnread(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return messages, nil
}

// MarkAsRead is idempotent: marking an already-read message succeeds without
// further effect. Only a missing message id is an error.
func (uc *messageUsecase) MarkAsRead(ctx context.Context, messageID int64) error {
	if err := uc.messageRepo.MarkAsRead(ctx, messageID); err != nil {
		return resolveErr(err, "Message not found")
	}
	return nil
}

// DeleteMessage tombstones the message rather than removing the row
func (uc *messageUsecase) DeleteMessage(ctx context.Context, messageID int64) error {
	if err := uc.messageRepo.SoftDelete(ctx, messageID); err != nil {
		return resolveErr(err, "Message not found")
	}
	return nil
}

// resolveErr maps a repository miss to a 404 and anything else to a 500
func resolveErr(err error, notFoundMsg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	return apperror.Internal(err)
}
