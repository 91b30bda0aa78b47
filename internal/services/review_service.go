package services

import (
	"context"
	"errors"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type ReviewService struct {
	ReviewRepo   *repositories.ReviewRepository
	PropertyRepo *repositories.PropertyRepository
	ServiceRepo  *repositories.ServiceRepository
}

func (s *ReviewService) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return models.Review{}, errors.New("rating must be between 1 and 5")
	}

	// reviewing your own listing is not allowed
	switch rev.ListingType {
	case "property":
		prop, err := s.PropertyRepo.GetPropertyByID(ctx, rev.ListingID, 0)
		if err != nil {
			return models.Review{}, err
		}
		if prop.UserID == rev.UserID {
			return models.Review{}, models.ErrForbidden
		}
	case "service":
		svc, err := s.ServiceRepo.GetServiceByID(ctx, rev.ListingID, 0)
		if err != nil {
			return models.Review{}, err
		}
		if svc.UserID == rev.UserID {
			return models.Review{}, models.ErrForbidden
		}
	default:
		return models.Review{}, errors.New("listing_type must be property or service")
	}

	return s.ReviewRepo.CreateReview(ctx, rev)
}

func (s *ReviewService) GetReviewsByListing(ctx context.Context, listingType string, listingID int) ([]models.Review, error) {
	return s.ReviewRepo.GetReviewsByListing(ctx, listingType, listingID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return models.Review{}, errors.New("rating must be between 1 and 5")
	}
	if err := s.ReviewRepo.UpdateReview(ctx, rev); err != nil {
		return models.Review{}, err
	}
	return s.ReviewRepo.GetReviewByID(ctx, rev.ID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id, userID int, isAdmin bool) error {
	return s.ReviewRepo.DeleteReview(ctx, id, userID, isAdmin)
}
