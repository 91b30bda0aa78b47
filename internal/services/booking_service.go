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

type BookingService struct {
	BookingRepo   *repositories.BookingRepository
	ServiceRepo   *repositories.ServiceRepository
	PropertyRepo  *repositories.PropertyRepository
	Notifications *NotificationService
}

// bookingTransitions is the allowed status graph keyed by current status.
// The bool marks whether the provider (true) or the client (false) drives
// the transition; cancellation is client-only, completion provider-only.
var bookingTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingDeclined, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

func knownBookingStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingDeclined,
		models.BookingCompleted, models.BookingCancelled:
		return true
	}
	return false
}

func canTransition(from, to string) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// transitionActor returns whether the provider or the client may perform the
// change. Declined/confirmed/completed belong to the provider, cancelled to
// the client.
func allowedActor(to string, isProvider bool) bool {
	switch to {
	case models.BookingConfirmed, models.BookingDeclined, models.BookingCompleted:
		return isProvider
	case models.BookingCancelled:
		return !isProvider
	}
	return false
}

func (s *BookingService) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.ScheduledAt.Before(time.Now()) {
		return models.Booking{}, errors.New("scheduled_at must be in the future")
	}

	switch b.TargetType {
	case models.BookingTargetService:
		svc, err := s.ServiceRepo.GetServiceByID(ctx, b.TargetID, 0)
		if err != nil {
			return models.Booking{}, err
		}
		if svc.VerificationStatus != models.VerificationVerified || svc.Archived {
			return models.Booking{}, models.ErrListingNotFound
		}
		b.ProviderID = svc.UserID
		if b.Amount == 0 {
			b.Amount = svc.Price
		}
	case models.BookingTargetProperty:
		prop, err := s.PropertyRepo.GetPropertyByID(ctx, b.TargetID, 0)
		if err != nil {
			return models.Booking{}, err
		}
		if prop.VerificationStatus != models.VerificationVerified || prop.Archived {
			return models.Booking{}, models.ErrListingNotFound
		}
		b.ProviderID = prop.UserID
	default:
		return models.Booking{}, errors.New("target_type must be service or property")
	}

	if b.ProviderID == b.ClientID {
		return models.Booking{}, errors.New("cannot book your own listing")
	}

	created, err := s.BookingRepo.CreateBooking(ctx, b)
	if err != nil {
		return models.Booking{}, err
	}

	s.notify(ctx, created.ProviderID, "New booking request",
		fmt.Sprintf("You have a new booking for %s", created.TargetTitle),
		fmt.Sprintf("/bookings/%d", created.ID))
	return created, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, id, userID int) (models.Booking, error) {
	b, err := s.BookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.ClientID != userID && b.ProviderID != userID {
		return models.Booking{}, models.ErrForbidden
	}
	return b, nil
}

func (s *BookingService) GetBookingsByClient(ctx context.Context, clientID int) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByClient(ctx, clientID)
}

func (s *BookingService) GetBookingsByProvider(ctx context.Context, providerID int) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByProvider(ctx, providerID)
}

// ChangeStatus moves a booking along the status graph and notifies the
// counterpart. The repository compare-and-set guards against concurrent
// changes racing past the check here.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID, userID int, to string) (models.Booking, error) {
	if !knownBookingStatus(to) {
		return models.Booking{}, models.ErrUnknownBookingStatus
	}

	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	isProvider := userID == b.ProviderID
	if !isProvider && userID != b.ClientID {
		return models.Booking{}, models.ErrForbidden
	}
	if !canTransition(b.Status, to) || !allowedActor(to, isProvider) {
		return models.Booking{}, models.ErrInvalidBookingState
	}

	if err := s.BookingRepo.UpdateStatus(ctx, bookingID, b.Status, to); err != nil {
		return models.Booking{}, err
	}

	counterpart := b.ClientID
	if !isProvider {
		counterpart = b.ProviderID
	}
	s.notify(ctx, counterpart, "Booking update",
		fmt.Sprintf("Booking for %s is now %s", b.TargetTitle, to),
		fmt.Sprintf("/bookings/%d", b.ID))

	return s.BookingRepo.GetBookingByID(ctx, bookingID)
}

func (s *BookingService) notify(ctx context.Context, userID int, title, body, link string) {
	if s.Notifications == nil {
		return
	}
	if err := s.Notifications.Notify(ctx, userID, title, body, link); err != nil {
		log.Printf("booking: notify user %d: %v", userID, err)
	}
}
