package models

import "time"

type Chat struct {
	ID        int       `json:"id"`
	User1ID   int       `json:"user1_id"`
	User2ID   int       `json:"user2_id"`
	User1     Owner     `json:"user1"`
	User2     Owner     `json:"user2"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is one row of the chat list screen: the counterpart, the
// latest message and how many incoming messages are still unread.
type Conversation struct {
	ChatID        int        `json:"chat_id"`
	UserID        int        `json:"user_id"`
	Name          string     `json:"name"`
	Surname       string     `json:"surname"`
	AvatarPath    *string    `json:"avatar_path,omitempty"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int        `json:"unread_count"`
}
