package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nyumbaBack/internal/models"
)

type MessageRepository struct {
	Db *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, chatID int, message models.Message) (models.Message, error) {
	result, err := r.Db.ExecContext(ctx, `
		INSERT INTO messages (chat_id, sender_id, receiver_id, text, is_read, created_at)
		VALUES (?, ?, ?, ?, 0, NOW())`,
		chatID, message.SenderID, message.ReceiverID, message.Text)
	if err != nil {
		return models.Message{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Message{}, err
	}

	var saved models.Message
	err = r.Db.QueryRowContext(ctx,
		`SELECT id, chat_id, sender_id, receiver_id, text, is_read, created_at FROM messages WHERE id = ?`, id).
		Scan(&saved.ID, &saved.ChatID, &saved.SenderID, &saved.ReceiverID, &saved.Text, &saved.Read, &saved.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	return saved, nil
}

func (r *MessageRepository) GetMessagesForChat(ctx context.Context, chatID, page, pageSize int) ([]models.Message, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize
	query := `
		SELECT id, chat_id, sender_id, receiver_id, text, is_read, created_at
		FROM messages WHERE chat_id = ?
		ORDER BY created_at ASC
		LIMIT ? OFFSET ?`

	rows, err := r.Db.QueryContext(ctx, query, chatID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkChatRead flags every incoming message of the chat as read for the
// given receiver.
func (r *MessageRepository) MarkChatRead(ctx context.Context, chatID, receiverID int) error {
	_, err := r.Db.ExecContext(ctx,
		`UPDATE messages SET is_read = 1 WHERE chat_id = ? AND receiver_id = ? AND is_read = 0`,
		chatID, receiverID)
	return err
}

func (r *MessageRepository) DeleteMessage(ctx context.Context, messageID, senderID int) error {
	res, err := r.Db.ExecContext(ctx,
		`DELETE FROM messages WHERE id = ? AND sender_id = ?`, messageID, senderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMessageNotFound
	}
	return nil
}

// ChatParticipants returns the two user ids of a chat.
func (r *MessageRepository) ChatParticipants(ctx context.Context, chatID int) (int, int, error) {
	var user1, user2 int
	err := r.Db.QueryRowContext(ctx,
		`SELECT user1_id, user2_id FROM chats WHERE id = ?`, chatID).Scan(&user1, &user2)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, models.ErrChatNotFound
		}
		return 0, 0, err
	}
	return user1, user2, nil
}
