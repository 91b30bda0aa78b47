package services

import (
	"context"
	"errors"
	"strings"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type ServiceService struct {
	ServiceRepo  *repositories.ServiceRepository
	CategoryRepo *repositories.CategoryRepository
	SubService   *SubscriptionService
	UserRepo     *repositories.UserRepository
}

func (s *ServiceService) CreateService(ctx context.Context, svc models.Service) (models.Service, error) {
	owner, err := s.UserRepo.GetUserByID(ctx, svc.UserID)
	if err != nil {
		return models.Service{}, err
	}
	if owner.Role != models.RoleProvider && owner.Role != models.RoleAdmin {
		return models.Service{}, models.ErrForbidden
	}
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}
	if _, err := s.CategoryRepo.GetCategoryByID(ctx, svc.CategoryID); err != nil {
		return models.Service{}, err
	}
	if err := s.SubService.EnsureListingSlot(ctx, svc.UserID); err != nil {
		return models.Service{}, err
	}
	svc.VerificationStatus = models.VerificationPending
	return s.ServiceRepo.CreateService(ctx, svc)
}

func validateService(svc models.Service) error {
	if strings.TrimSpace(svc.Title) == "" {
		return errors.New("title is required")
	}
	if svc.Price <= 0 {
		return errors.New("price must be positive")
	}
	if svc.PriceType != models.PriceTypeFixed && svc.PriceType != models.PriceTypeHourly {
		return errors.New("price_type must be fixed or hourly")
	}
	if svc.CategoryID == 0 {
		return errors.New("category_id is required")
	}
	return nil
}

// GetServiceByID applies the same visibility rule as property fetches.
func (s *ServiceService) GetServiceByID(ctx context.Context, id, viewerID int, viewerRole string) (models.Service, error) {
	svc, err := s.ServiceRepo.GetServiceByID(ctx, id, viewerID)
	if err != nil {
		return models.Service{}, err
	}
	if !listingVisible(svc.VerificationStatus, svc.Archived, svc.UserID, viewerID, viewerRole) {
		return models.Service{}, models.ErrServiceNotFound
	}
	return svc, nil
}

func (s *ServiceService) GetServicesByUserID(ctx context.Context, userID int) ([]models.Service, error) {
	return s.ServiceRepo.GetServicesByUserID(ctx, userID)
}

func (s *ServiceService) GetFilteredServices(ctx context.Context, req models.ServiceFilterRequest) (models.ServiceListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 10
	}
	return s.ServiceRepo.GetFilteredServices(ctx, req)
}

func (s *ServiceService) UpdateService(ctx context.Context, svc models.Service) (models.Service, error) {
	existing, err := s.ServiceRepo.GetServiceByID(ctx, svc.ID, 0)
	if err != nil {
		return models.Service{}, err
	}
	if existing.UserID != svc.UserID {
		return models.Service{}, models.ErrForbidden
	}
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}
	return s.ServiceRepo.UpdateService(ctx, svc)
}

func (s *ServiceService) DeleteService(ctx context.Context, id, userID int, isAdmin bool) error {
	if isAdmin {
		existing, err := s.ServiceRepo.GetServiceByID(ctx, id, 0)
		if err != nil {
			return err
		}
		userID = existing.UserID
	}
	return s.ServiceRepo.DeleteService(ctx, id, userID)
}
