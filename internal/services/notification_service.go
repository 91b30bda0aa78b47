package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

// NotificationService persists in-app notifications and mirrors them as FCM
// pushes to every registered device of the target user. FCM is optional: with
// a nil client only the in-app row is written.
type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
	FCM              *messaging.Client
}

func (s *NotificationService) Notify(ctx context.Context, userID int, title, body, link string) error {
	_, err := s.NotificationRepo.CreateNotification(ctx, models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Link:   link,
	})
	if err != nil {
		return err
	}

	if s.FCM == nil {
		return nil
	}
	tokens, err := s.NotificationRepo.GetDeviceTokens(ctx, userID)
	if err != nil {
		log.Printf("notify: fetch tokens for user %d: %v", userID, err)
		return nil
	}
	for _, token := range tokens {
		if err := s.push(ctx, token, title, body, link); err != nil {
			log.Printf("notify: push to user %d failed: %v", userID, err)
		}
	}
	return nil
}

func (s *NotificationService) push(ctx context.Context, token, title, body, link string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"link": link,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}
	_, err := s.FCM.Send(ctx, message)
	return err
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID, page, limit int) ([]models.Notification, error) {
	return s.NotificationRepo.GetNotificationsByUser(ctx, userID, page, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int) (int, error) {
	return s.NotificationRepo.UnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.NotificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) SaveDeviceToken(ctx context.Context, userID int, token string) error {
	return s.NotificationRepo.SaveDeviceToken(ctx, userID, token)
}

func (s *NotificationService) DeleteDeviceToken(ctx context.Context, userID int, token string) error {
	return s.NotificationRepo.DeleteDeviceToken(ctx, userID, token)
}
