package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type AdminService struct {
	AdminRepo     *repositories.AdminRepository
	UserRepo      *repositories.UserRepository
	PropertyRepo  *repositories.PropertyRepository
	ServiceRepo   *repositories.ServiceRepository
	BookingRepo   *repositories.BookingRepository
	PaymentRepo   *repositories.PaymentRepository
	Notifications *NotificationService
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.UsersCount, err = s.AdminRepo.CountUsers(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.ProvidersCount, err = s.AdminRepo.CountUsersByRole(ctx, models.RoleProvider); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.PropertiesCount, err = s.AdminRepo.CountProperties(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.ServicesCount, err = s.AdminRepo.CountServices(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.PendingListings, err = s.AdminRepo.CountPendingListings(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.BookingsByStatus, err = s.BookingRepo.CountByStatus(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.PaymentsRevenue, err = s.PaymentRepo.TotalRevenue(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.SignupsLast7Days, err = s.AdminRepo.CountSignupsSince(ctx, 7); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.BookingsLast7Days, err = s.BookingRepo.CountCreatedSince(ctx, 7); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}

func (s *AdminService) GetPendingProperties(ctx context.Context, page, limit int) ([]models.Property, error) {
	return s.PropertyRepo.GetPendingProperties(ctx, page, limit)
}

func (s *AdminService) GetPendingServices(ctx context.Context, page, limit int) ([]models.Service, error) {
	return s.ServiceRepo.GetPendingServices(ctx, page, limit)
}

// ModerateProperty applies an admin verification decision and notifies the
// owner. Rejection requires a reason.
func (s *AdminService) ModerateProperty(ctx context.Context, id int, req models.ModerationRequest) error {
	reason, err := moderationReason(req)
	if err != nil {
		return err
	}
	prop, err := s.PropertyRepo.GetPropertyByID(ctx, id, 0)
	if err != nil {
		return err
	}
	if err := s.PropertyRepo.SetVerificationStatus(ctx, id, req.Status, reason); err != nil {
		return err
	}
	s.notifyModeration(ctx, prop.UserID, prop.Title, req, fmt.Sprintf("/properties/%d", id))
	return nil
}

func (s *AdminService) ModerateService(ctx context.Context, id int, req models.ModerationRequest) error {
	reason, err := moderationReason(req)
	if err != nil {
		return err
	}
	svc, err := s.ServiceRepo.GetServiceByID(ctx, id, 0)
	if err != nil {
		return err
	}
	if err := s.ServiceRepo.SetVerificationStatus(ctx, id, req.Status, reason); err != nil {
		return err
	}
	s.notifyModeration(ctx, svc.UserID, svc.Title, req, fmt.Sprintf("/services/%d", id))
	return nil
}

func moderationReason(req models.ModerationRequest) (*string, error) {
	switch req.Status {
	case models.VerificationVerified:
		return nil, nil
	case models.VerificationRejected:
		if req.Reason == "" {
			return nil, errors.New("rejection requires a reason")
		}
		reason := req.Reason
		return &reason, nil
	}
	return nil, errors.New("status must be verified or rejected")
}

func (s *AdminService) notifyModeration(ctx context.Context, ownerID int, title string, req models.ModerationRequest, link string) {
	if s.Notifications == nil {
		return
	}
	body := fmt.Sprintf("Your listing %q has been verified", title)
	if req.Status == models.VerificationRejected {
		body = fmt.Sprintf("Your listing %q was rejected: %s", title, req.Reason)
	}
	if err := s.Notifications.Notify(ctx, ownerID, "Listing review", body, link); err != nil {
		log.Printf("admin: notify owner %d: %v", ownerID, err)
	}
}

func (s *AdminService) SetUserBlocked(ctx context.Context, userID int, blocked bool) error {
	if _, err := s.UserRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.UserRepo.SetBlocked(ctx, userID, blocked)
}

func (s *AdminService) RecentSignups(ctx context.Context, days int) ([]models.RecentSignup, error) {
	if days < 1 {
		days = 7
	}
	return s.UserRepo.RecentSignups(ctx, time.Now().AddDate(0, 0, -days))
}
