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

// reminderWindow is how far ahead of the due date owners are reminded.
const reminderWindow = 3 * 24 * time.Hour

type MaintenanceService struct {
	MaintenanceRepo *repositories.MaintenanceRepository
	PropertyRepo    *repositories.PropertyRepository
	Notifications   *NotificationService
}

func computeNextDue(lastServicedAt time.Time, intervalDays int) time.Time {
	return lastServicedAt.AddDate(0, 0, intervalDays)
}

func (s *MaintenanceService) CreateAsset(ctx context.Context, a models.MaintenanceAsset) (models.MaintenanceAsset, error) {
	if a.IntervalDays < 1 {
		return models.MaintenanceAsset{}, errors.New("interval_days must be at least 1")
	}
	prop, err := s.PropertyRepo.GetPropertyByID(ctx, a.PropertyID, 0)
	if err != nil {
		return models.MaintenanceAsset{}, err
	}
	if prop.UserID != a.OwnerID {
		return models.MaintenanceAsset{}, models.ErrForbidden
	}
	if a.LastServicedAt.IsZero() {
		a.LastServicedAt = time.Now()
	}
	a.NextDueAt = computeNextDue(a.LastServicedAt, a.IntervalDays)
	return s.MaintenanceRepo.CreateAsset(ctx, a)
}

func (s *MaintenanceService) GetAssetsByProperty(ctx context.Context, propertyID, ownerID int) ([]models.MaintenanceAsset, error) {
	prop, err := s.PropertyRepo.GetPropertyByID(ctx, propertyID, 0)
	if err != nil {
		return nil, err
	}
	if prop.UserID != ownerID {
		return nil, models.ErrForbidden
	}
	return s.MaintenanceRepo.GetAssetsByProperty(ctx, propertyID)
}

func (s *MaintenanceService) GetAssetsByOwner(ctx context.Context, ownerID int) ([]models.MaintenanceAsset, error) {
	return s.MaintenanceRepo.GetAssetsByOwner(ctx, ownerID)
}

// CompleteService records a maintenance visit and rolls the schedule forward.
func (s *MaintenanceService) CompleteService(ctx context.Context, assetID, ownerID int, servicedAt time.Time) (models.MaintenanceAsset, error) {
	asset, err := s.MaintenanceRepo.GetAssetByID(ctx, assetID)
	if err != nil {
		return models.MaintenanceAsset{}, err
	}
	if asset.OwnerID != ownerID {
		return models.MaintenanceAsset{}, models.ErrForbidden
	}
	if servicedAt.IsZero() {
		servicedAt = time.Now()
	}
	next := computeNextDue(servicedAt, asset.IntervalDays)
	if err := s.MaintenanceRepo.CompleteService(ctx, assetID, servicedAt, next); err != nil {
		return models.MaintenanceAsset{}, err
	}
	return s.MaintenanceRepo.GetAssetByID(ctx, assetID)
}

func (s *MaintenanceService) UpdateAsset(ctx context.Context, a models.MaintenanceAsset) (models.MaintenanceAsset, error) {
	if a.IntervalDays < 1 {
		return models.MaintenanceAsset{}, errors.New("interval_days must be at least 1")
	}
	existing, err := s.MaintenanceRepo.GetAssetByID(ctx, a.ID)
	if err != nil {
		return models.MaintenanceAsset{}, err
	}
	if existing.OwnerID != a.OwnerID {
		return models.MaintenanceAsset{}, models.ErrForbidden
	}
	a.LastServicedAt = existing.LastServicedAt
	a.NextDueAt = computeNextDue(existing.LastServicedAt, a.IntervalDays)
	return s.MaintenanceRepo.UpdateAsset(ctx, a)
}

func (s *MaintenanceService) DeleteAsset(ctx context.Context, assetID, ownerID int) error {
	existing, err := s.MaintenanceRepo.GetAssetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return models.ErrForbidden
	}
	return s.MaintenanceRepo.DeleteAsset(ctx, assetID)
}

// RemindDue notifies owners of assets due within the reminder window and
// marks each asset notified so the next run skips it until it is serviced
// again. A failed notification skips the mark so it retries next run.
func (s *MaintenanceService) RemindDue(ctx context.Context, now time.Time) (int, error) {
	assets, err := s.MaintenanceRepo.GetDueAssets(ctx, now.Add(reminderWindow))
	if err != nil {
		return 0, err
	}

	reminded := 0
	for _, asset := range assets {
		body := fmt.Sprintf("%s is due for service on %s", asset.Name,
			asset.NextDueAt.Format("02 Jan 2006"))
		if asset.NextDueAt.Before(now) {
			body = fmt.Sprintf("%s is overdue for service since %s", asset.Name,
				asset.NextDueAt.Format("02 Jan 2006"))
		}
		if s.Notifications != nil {
			if err := s.Notifications.Notify(ctx, asset.OwnerID, "Maintenance reminder", body,
				fmt.Sprintf("/properties/%d/maintenance", asset.PropertyID)); err != nil {
				log.Printf("maintenance: remind owner %d about asset %d: %v", asset.OwnerID, asset.ID, err)
				continue
			}
		}
		if err := s.MaintenanceRepo.MarkNotified(ctx, asset.ID, now); err != nil {
			log.Printf("maintenance: mark asset %d notified: %v", asset.ID, err)
			continue
		}
		reminded++
	}
	return reminded, nil
}
