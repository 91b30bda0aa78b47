package services

import (
	"context"
	"errors"
	"time"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

// Plan pricing in XAF per month and the listing slots each plan grants.
type PlanSpec struct {
	Amount float64
	Slots  int
}

var planSpecs = map[string]PlanSpec{
	models.PlanBasic:    {Amount: 5000, Slots: 1},
	models.PlanStandard: {Amount: 10000, Slots: 5},
	models.PlanPremium:  {Amount: 20000, Slots: 15},
}

// PlanFor returns the pricing spec for a plan name.
func PlanFor(plan string) (PlanSpec, bool) {
	spec, ok := planSpecs[plan]
	return spec, ok
}

type SubscriptionService struct {
	SubscriptionRepo *repositories.SubscriptionRepository
	ServiceRepo      *repositories.ServiceRepository
}

// EnsureListingSlot fails with ErrNoListingSlots when the provider's active
// plan has no room for one more published listing.
func (s *SubscriptionService) EnsureListingSlot(ctx context.Context, userID int) error {
	sub, err := s.SubscriptionRepo.GetActiveSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.ErrNoListingSlots
		}
		return err
	}
	active, err := s.ServiceRepo.CountActiveListings(ctx, userID)
	if err != nil {
		return err
	}
	if active >= sub.Slots {
		return models.ErrNoListingSlots
	}
	return nil
}

// GetProfile assembles subscription state for the provider's profile screen.
func (s *SubscriptionService) GetProfile(ctx context.Context, userID int) (models.SubscriptionProfile, error) {
	active, err := s.ServiceRepo.CountActiveListings(ctx, userID)
	if err != nil {
		return models.SubscriptionProfile{}, err
	}

	sub, err := s.SubscriptionRepo.GetActiveSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.SubscriptionProfile{
				Active:              false,
				ActiveListingsCount: active,
			}, nil
		}
		return models.SubscriptionProfile{}, err
	}

	spec := planSpecs[sub.Plan]
	remaining := sub.Slots - active
	if remaining < 0 {
		remaining = 0
	}
	renewsAt := sub.RenewsAt
	return models.SubscriptionProfile{
		Plan:                sub.Plan,
		Active:              true,
		Slots:               sub.Slots,
		ActiveListingsCount: active,
		RemainingSlots:      remaining,
		RenewsAt:            &renewsAt,
		MonthlyAmount:       spec.Amount,
	}, nil
}

// ActivatePlan is invoked by the payments flow after a successful
// subscription collection.
func (s *SubscriptionService) ActivatePlan(ctx context.Context, userID int, plan string) error {
	spec, ok := planSpecs[plan]
	if !ok {
		return errors.New("unknown subscription plan")
	}
	return s.SubscriptionRepo.ActivatePlan(ctx, userID, plan, spec.Slots, time.Now())
}

// ArchiveExpired archives listings of providers whose subscription lapsed.
// Returns the number of subscriptions expired.
func (s *SubscriptionService) ArchiveExpired(ctx context.Context, now time.Time) (int, error) {
	return s.SubscriptionRepo.ArchiveExpiredProviderListings(ctx, now)
}
