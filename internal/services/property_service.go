package services

import (
	"context"
	"errors"
	"strings"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type PropertyService struct {
	PropertyRepo *repositories.PropertyRepository
	ServiceRepo  *repositories.ServiceRepository
	SubService   *SubscriptionService
	UserRepo     *repositories.UserRepository
}

func (s *PropertyService) CreateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	owner, err := s.UserRepo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return models.Property{}, err
	}
	if owner.Role != models.RoleProvider && owner.Role != models.RoleAdmin {
		return models.Property{}, models.ErrForbidden
	}
	if err := validateProperty(p); err != nil {
		return models.Property{}, err
	}
	if err := s.SubService.EnsureListingSlot(ctx, p.UserID); err != nil {
		return models.Property{}, err
	}
	p.VerificationStatus = models.VerificationPending
	return s.PropertyRepo.CreateProperty(ctx, p)
}

func validateProperty(p models.Property) error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if p.ListingType != models.ListingTypeRent && p.ListingType != models.ListingTypeSale {
		return errors.New("listing_type must be rent or sale")
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	if p.CityID == 0 {
		return errors.New("city_id is required")
	}
	return nil
}

// GetPropertyByID serves the public listing page. Only verified, non-archived
// rows are visible; the owner and admins see the row in any state.
func (s *PropertyService) GetPropertyByID(ctx context.Context, id, viewerID int, viewerRole string) (models.Property, error) {
	p, err := s.PropertyRepo.GetPropertyByID(ctx, id, viewerID)
	if err != nil {
		return models.Property{}, err
	}
	if !listingVisible(p.VerificationStatus, p.Archived, p.UserID, viewerID, viewerRole) {
		return models.Property{}, models.ErrPropertyNotFound
	}
	return p, nil
}

func listingVisible(status string, archived bool, ownerID, viewerID int, viewerRole string) bool {
	if viewerID != 0 && viewerID == ownerID {
		return true
	}
	if viewerRole == models.RoleAdmin {
		return true
	}
	return status == models.VerificationVerified && !archived
}

func (s *PropertyService) GetPropertiesByUserID(ctx context.Context, userID int) ([]models.Property, error) {
	return s.PropertyRepo.GetPropertiesByUserID(ctx, userID)
}

func (s *PropertyService) GetFilteredProperties(ctx context.Context, req models.PropertyFilterRequest) (models.PropertyListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 10
	}
	return s.PropertyRepo.GetFilteredProperties(ctx, req)
}

// UpdateProperty lets the owner edit a listing. Any edit resets verification
// back to pending so admins re-review the changed content.
func (s *PropertyService) UpdateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, p.ID, 0)
	if err != nil {
		return models.Property{}, err
	}
	if existing.UserID != p.UserID {
		return models.Property{}, models.ErrForbidden
	}
	if err := validateProperty(p); err != nil {
		return models.Property{}, err
	}
	return s.PropertyRepo.UpdateProperty(ctx, p)
}

func (s *PropertyService) SetArchived(ctx context.Context, id, userID int, archived bool) error {
	if !archived {
		// unarchiving puts the listing back into the slot count
		if err := s.SubService.EnsureListingSlot(ctx, userID); err != nil {
			return err
		}
	}
	return s.PropertyRepo.SetArchived(ctx, id, userID, archived)
}

func (s *PropertyService) DeleteProperty(ctx context.Context, id, userID int, isAdmin bool) error {
	if isAdmin {
		existing, err := s.PropertyRepo.GetPropertyByID(ctx, id, 0)
		if err != nil {
			return err
		}
		userID = existing.UserID
	}
	return s.PropertyRepo.DeleteProperty(ctx, id, userID)
}
