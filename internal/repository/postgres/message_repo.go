package postgres

import (
	"context"
	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/pkg/id"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db}
}

// Create inserts a new message. The id and sent_at are assigned here, not by
// the caller: snowflake ids are time-ordered, so (sent_at, id) stays a
// deterministic total order even when two inserts land on the same timestamp.
func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, sent_at, is_read, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	msg.ID = id.New()
	msg.SentAt = time.Now()
	msg.IsRead = false
	msg.IsDeleted = false

	_, err := r.db.Exec(ctx, query,
		msg.ID,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
		msg.SentAt,
		msg.IsRead,
		msg.IsDeleted,
	)
	return err
}

// GetConversation retrieves both directions of traffic between two users as
// one chronological sequence. Soft-deleted rows are excluded.
func (r *messageRepo) GetConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, sent_at, is_read, is_deleted
		FROM messages
		WHERE ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
		  AND is_deleted = FALSE
		ORDER BY sent_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID,
			&msg.Content, &msg.SentAt, &msg.IsRead, &msg.IsDeleted,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// GetPartners retrieves the distinct set of users this user has exchanged
// messages with, in either direction. UNION deduplicates.
func (r *messageRepo) GetPartners(ctx context.Context, userID int64) ([]domain.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role
		FROM users u
		WHERE u.id IN (
			SELECT receiver_id FROM messages WHERE sender_id = $1
			UNION
			SELECT sender_id FROM messages WHERE receiver_id = $1
		) AND u.id <> $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Role); err != nil {
			return nil, err
		}
		partners = append(partners, user)
	}
	return partners, rows.Err()
}

// GetUnread retrieves undeleted unread messages for a receiver, oldest first
func (r *messageRepo) GetUnread(ctx context.Context, userID int64) ([]domain.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, sent_at, is_read, is_deleted
		FROM messages
		WHERE receiver_id = $1 AND is_read = FALSE AND is_deleted = FALSE
		ORDER BY sent_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID,
			&msg.Content, &msg.SentAt, &msg.IsRead, &msg.IsDeleted,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkAsRead sets is_read. Re-marking an already-read message matches the
// same row and is a no-op success; only a missing id is an error.
func (r *messageRepo) MarkAsRead(ctx context.Context, msgID int64) error {
	query := `UPDATE messages SET is_read = TRUE WHERE id = $1`
	result, err := r.db.Exec(ctx, query, msgID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete sets the tombstone flag. The row stays in place for history;
// conversation and unread queries stop returning it.
func (r *messageRepo) SoftDelete(ctx context.Context, msgID int64) error {
	query := `UPDATE messages SET is_deleted = TRUE WHERE id = $1`
	result, err := r.db.Exec(ctx, query, msgID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
