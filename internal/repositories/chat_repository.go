package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nyumbaBack/internal/models"
)

type ChatRepository struct {
	Db *sql.DB
}

// GetOrCreateChat finds the chat between two users regardless of who opened
// it, creating one when it does not exist yet.
func (r *ChatRepository) GetOrCreateChat(ctx context.Context, user1ID, user2ID int) (int, error) {
	var chatID int
	query := `
		SELECT id FROM chats
		WHERE (user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)
		LIMIT 1`
	err := r.Db.QueryRowContext(ctx, query, user1ID, user2ID, user2ID, user1ID).Scan(&chatID)
	if err == nil {
		return chatID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	result, err := r.Db.ExecContext(ctx,
		`INSERT INTO chats (user1_id, user2_id, created_at) VALUES (?, ?, NOW())`, user1ID, user2ID)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	var chat models.Chat
	query := `
		SELECT c.id, c.user1_id, c.user2_id, c.created_at,
		       u1.name, u1.surname, u1.avatar_path,
		       u2.name, u2.surname, u2.avatar_path
		FROM chats c
		JOIN users u1 ON c.user1_id = u1.id
		JOIN users u2 ON c.user2_id = u2.id
		WHERE c.id = ?`
	err := r.Db.QueryRowContext(ctx, query, id).Scan(
		&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt,
		&chat.User1.Name, &chat.User1.Surname, &chat.User1.AvatarPath,
		&chat.User2.Name, &chat.User2.Surname, &chat.User2.AvatarPath,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Chat{}, models.ErrChatNotFound
		}
		return models.Chat{}, err
	}
	chat.User1.ID = chat.User1ID
	chat.User2.ID = chat.User2ID
	return chat, nil
}

// GetConversationsByUserID builds the chat-list screen in one query: the
// counterpart of every chat the user participates in, the latest message per
// chat and the count of incoming messages still unread.
func (r *ChatRepository) GetConversationsByUserID(ctx context.Context, userID int) ([]models.Conversation, error) {
	query := `
WITH last_messages AS (
    SELECT m.chat_id, m.text, m.created_at
    FROM messages m
    JOIN (
        SELECT chat_id, MAX(created_at) AS max_created
        FROM messages
        GROUP BY chat_id
    ) t ON t.chat_id = m.chat_id AND t.max_created = m.created_at
),
unread AS (
    SELECT chat_id, COUNT(*) AS unread_count
    FROM messages
    WHERE receiver_id = ? AND is_read = 0
    GROUP BY chat_id
)
SELECT c.id,
       other.id, other.name, other.surname, other.avatar_path,
       COALESCE(lm.text, '') AS last_message,
       COALESCE(lm.created_at, c.created_at) AS last_message_at,
       COALESCE(un.unread_count, 0)
FROM chats c
JOIN users other ON other.id = IF(c.user1_id = ?, c.user2_id, c.user1_id)
LEFT JOIN last_messages lm ON lm.chat_id = c.id
LEFT JOIN unread un ON un.chat_id = c.id
WHERE c.user1_id = ? OR c.user2_id = ?
ORDER BY last_message_at DESC`

	rows, err := r.Db.QueryContext(ctx, query, userID, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var conv models.Conversation
		var lastAt sql.NullTime
		if err := rows.Scan(
			&conv.ChatID,
			&conv.UserID, &conv.Name, &conv.Surname, &conv.AvatarPath,
			&conv.LastMessage, &lastAt, &conv.UnreadCount,
		); err != nil {
			return nil, err
		}
		if lastAt.Valid {
			t := lastAt.Time
			conv.LastMessageAt = &t
		}
		if conv.AvatarPath != nil && *conv.AvatarPath == "" {
			conv.AvatarPath = nil
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

func (r *ChatRepository) DeleteChat(ctx context.Context, id int) error {
	_, err := r.Db.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, id)
	return err
}
