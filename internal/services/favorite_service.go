package services

import (
	"context"
	"errors"
	"log"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
	PropertyRepo *repositories.PropertyRepository
	ServiceRepo  *repositories.ServiceRepository
}

// FavoritesResponse returns the user's saved listings resolved to full rows.
type FavoritesResponse struct {
	Properties []models.Property `json:"properties"`
	Services   []models.Service  `json:"services"`
}

func (s *FavoriteService) AddToFavorites(ctx context.Context, fav models.Favorite) error {
	switch fav.ListingType {
	case "property":
		if _, err := s.PropertyRepo.GetPropertyByID(ctx, fav.ListingID, 0); err != nil {
			return err
		}
	case "service":
		if _, err := s.ServiceRepo.GetServiceByID(ctx, fav.ListingID, 0); err != nil {
			return err
		}
	default:
		return errors.New("listing_type must be property or service")
	}
	return s.FavoriteRepo.AddToFavorites(ctx, fav)
}

func (s *FavoriteService) RemoveFromFavorites(ctx context.Context, userID int, listingType string, listingID int) error {
	return s.FavoriteRepo.RemoveFromFavorites(ctx, userID, listingType, listingID)
}

// GetFavorites resolves saved refs to full listings. Refs pointing at deleted
// listings are skipped rather than failing the whole list.
func (s *FavoriteService) GetFavorites(ctx context.Context, userID int) (FavoritesResponse, error) {
	refs, err := s.FavoriteRepo.GetFavoriteRefs(ctx, userID)
	if err != nil {
		return FavoritesResponse{}, err
	}

	resp := FavoritesResponse{
		Properties: []models.Property{},
		Services:   []models.Service{},
	}
	for _, ref := range refs {
		switch ref.ListingType {
		case "property":
			prop, err := s.PropertyRepo.GetPropertyByID(ctx, ref.ListingID, userID)
			if err != nil {
				if !errors.Is(err, models.ErrPropertyNotFound) {
					log.Printf("favorites: resolve property %d: %v", ref.ListingID, err)
				}
				continue
			}
			resp.Properties = append(resp.Properties, prop)
		case "service":
			svc, err := s.ServiceRepo.GetServiceByID(ctx, ref.ListingID, userID)
			if err != nil {
				if !errors.Is(err, models.ErrServiceNotFound) {
					log.Printf("favorites: resolve service %d: %v", ref.ListingID, err)
				}
				continue
			}
			resp.Services = append(resp.Services, svc)
		}
	}
	return resp, nil
}
