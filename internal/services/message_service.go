package services

import (
	"context"
	"log"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

// DirectSender delivers a message to a connected websocket client. Implemented
// by the websocket hub; IsOnline lets the service fall back to a push
// notification when the receiver has no live socket.
type DirectSender interface {
	SendDirect(userID int, msg models.Message)
	IsOnline(userID int) bool
}

type MessageService struct {
	MessageRepo   *repositories.MessageRepository
	ChatRepo      *repositories.ChatRepository
	Hub           DirectSender
	Notifications *NotificationService
}

// SendMessage persists a message, mirrors it to the receiver's live socket
// when one exists and otherwise falls back to a push notification.
func (s *MessageService) SendMessage(ctx context.Context, senderID, chatID int, text string) (models.Message, error) {
	u1, u2, err := s.MessageRepo.ChatParticipants(ctx, chatID)
	if err != nil {
		return models.Message{}, err
	}
	if senderID != u1 && senderID != u2 {
		return models.Message{}, models.ErrForbidden
	}
	receiverID := u1
	if senderID == u1 {
		receiverID = u2
	}

	msg, err := s.MessageRepo.CreateMessage(ctx, chatID, models.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
	})
	if err != nil {
		return models.Message{}, err
	}

	if s.Hub != nil && s.Hub.IsOnline(receiverID) {
		s.Hub.SendDirect(receiverID, msg)
	} else if s.Notifications != nil {
		if err := s.Notifications.Notify(ctx, receiverID, "New message", text,
			"/chats"); err != nil {
			log.Printf("message: notify user %d: %v", receiverID, err)
		}
	}
	return msg, nil
}

func (s *MessageService) GetMessages(ctx context.Context, chatID, userID, page, pageSize int) ([]models.Message, error) {
	u1, u2, err := s.MessageRepo.ChatParticipants(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if userID != u1 && userID != u2 {
		return nil, models.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.MessageRepo.GetMessagesForChat(ctx, chatID, page, pageSize)
}

// MarkChatRead marks all messages addressed to userID in this chat as read.
func (s *MessageService) MarkChatRead(ctx context.Context, chatID, userID int) error {
	return s.MessageRepo.MarkChatRead(ctx, chatID, userID)
}

func (s *MessageService) DeleteMessage(ctx context.Context, messageID, senderID int) error {
	return s.MessageRepo.DeleteMessage(ctx, messageID, senderID)
}
