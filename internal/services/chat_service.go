package services

import (
	"context"
	"errors"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type ChatService struct {
	ChatRepo *repositories.ChatRepository
}

func (s *ChatService) GetOrCreateChat(ctx context.Context, userID, otherUserID int) (models.Chat, error) {
	if userID == otherUserID {
		return models.Chat{}, errors.New("cannot open a chat with yourself")
	}
	chatID, err := s.ChatRepo.GetOrCreateChat(ctx, userID, otherUserID)
	if err != nil {
		return models.Chat{}, err
	}
	return s.ChatRepo.GetChatByID(ctx, chatID)
}

func (s *ChatService) GetChatByID(ctx context.Context, chatID, userID int) (models.Chat, error) {
	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return models.Chat{}, err
	}
	if chat.User1ID != userID && chat.User2ID != userID {
		return models.Chat{}, models.ErrForbidden
	}
	return chat, nil
}

func (s *ChatService) GetConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	return s.ChatRepo.GetConversationsByUserID(ctx, userID)
}

func (s *ChatService) DeleteChat(ctx context.Context, chatID, userID int) error {
	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return err
	}
	if chat.User1ID != userID && chat.User2ID != userID {
		return models.ErrForbidden
	}
	return s.ChatRepo.DeleteChat(ctx, chatID)
}
