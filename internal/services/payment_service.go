package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type PaymentService struct {
	PaymentRepo   *repositories.PaymentRepository
	BookingRepo   *repositories.BookingRepository
	Subscriptions *SubscriptionService
	Momo          *MomoService
	Notifications *NotificationService
}

// InitiatePayment creates a PENDING payment row and fires a MoMo
// request-to-pay. The provider settles asynchronously; the row is updated
// either by the callback or by status polling.
func (s *PaymentService) InitiatePayment(ctx context.Context, userID int, req models.PaymentRequest) (models.Payment, error) {
	payment := models.Payment{
		Reference:  uuid.New().String(),
		UserID:     userID,
		Purpose:    req.Purpose,
		PayerPhone: req.PayerPhone,
		Currency:   s.Momo.Currency(),
	}

	switch req.Purpose {
	case models.PaymentPurposeSubscription:
		spec, ok := PlanFor(req.Plan)
		if !ok {
			return models.Payment{}, errors.New("unknown subscription plan")
		}
		payment.Plan = req.Plan
		payment.Amount = spec.Amount
	case models.PaymentPurposeBooking:
		booking, err := s.BookingRepo.GetBookingByID(ctx, req.BookingID)
		if err != nil {
			return models.Payment{}, err
		}
		if booking.ClientID != userID {
			return models.Payment{}, models.ErrForbidden
		}
		if booking.Status != models.BookingConfirmed {
			return models.Payment{}, models.ErrInvalidBookingState
		}
		if booking.Paid {
			return models.Payment{}, errors.New("booking is already paid")
		}
		payment.TargetID = booking.ID
		payment.Amount = booking.Amount
	default:
		return models.Payment{}, errors.New("purpose must be subscription or booking")
	}

	if payment.Amount <= 0 {
		return models.Payment{}, errors.New("payment amount must be positive")
	}

	created, err := s.PaymentRepo.CreatePayment(ctx, payment)
	if err != nil {
		return models.Payment{}, err
	}

	amount := strconv.FormatFloat(created.Amount, 'f', 0, 64)
	message := paymentMessage(created)
	if err := s.Momo.RequestToPay(ctx, created.Reference, amount, created.PayerPhone,
		strconv.Itoa(created.ID), message); err != nil {
		reason := err.Error()
		if _, uerr := s.PaymentRepo.UpdateStatus(ctx, created.Reference, models.PaymentFailed, &reason); uerr != nil {
			log.Printf("payment %s: mark failed: %v", created.Reference, uerr)
		}
		return models.Payment{}, err
	}
	return created, nil
}

func paymentMessage(p models.Payment) string {
	if p.Purpose == models.PaymentPurposeSubscription {
		return fmt.Sprintf("Nyumba %s plan", p.Plan)
	}
	return fmt.Sprintf("Nyumba booking #%d", p.TargetID)
}

// CheckPayment polls MoMo for the final state of a pending payment and, on
// the first observed success, applies the purpose (activates the plan or
// marks the booking paid).
func (s *PaymentService) CheckPayment(ctx context.Context, userID int, reference string) (models.Payment, error) {
	payment, err := s.PaymentRepo.GetPaymentByReference(ctx, reference)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.UserID != userID {
		return models.Payment{}, models.ErrForbidden
	}
	return s.confirmWithProvider(ctx, payment)
}

// HandleCallback processes the asynchronous MoMo outcome post. The callback
// endpoint is unauthenticated and MoMo does not sign the body, so the body is
// only a hint that an outcome exists; the status that gets applied is always
// re-fetched from the provider.
func (s *PaymentService) HandleCallback(ctx context.Context, reference string) error {
	payment, err := s.PaymentRepo.GetPaymentByReference(ctx, reference)
	if err != nil {
		return err
	}
	_, err = s.confirmWithProvider(ctx, payment)
	return err
}

// confirmWithProvider re-reads the provider state of a pending payment and
// applies it. Payments already out of PENDING come back unchanged.
func (s *PaymentService) confirmWithProvider(ctx context.Context, payment models.Payment) (models.Payment, error) {
	if payment.Status != models.PaymentPending {
		return payment, nil
	}
	status, err := s.Momo.GetRequestToPayStatus(ctx, payment.Reference)
	if err != nil {
		return models.Payment{}, err
	}
	return s.applyStatus(ctx, payment, status.Status, status.Reason)
}

func (s *PaymentService) applyStatus(ctx context.Context, payment models.Payment, status, reason string) (models.Payment, error) {
	switch status {
	case models.PaymentPending:
		return payment, nil
	case models.PaymentSuccessful, models.PaymentFailed, models.PaymentRejected:
	default:
		return models.Payment{}, fmt.Errorf("unknown payment status %q", status)
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	// first transition out of PENDING wins; callback and polling can race
	applied, err := s.PaymentRepo.UpdateStatus(ctx, payment.Reference, status, reasonPtr)
	if err != nil {
		return models.Payment{}, err
	}
	if !applied {
		return s.PaymentRepo.GetPaymentByReference(ctx, payment.Reference)
	}

	if status == models.PaymentSuccessful {
		if err := s.applyPurpose(ctx, payment); err != nil {
			// the row is terminal now, nothing would retry the purpose;
			// put it back to PENDING so the next poll settles it again
			if rerr := s.PaymentRepo.RevertToPending(ctx, payment.Reference); rerr != nil {
				log.Printf("payment %s: revert to pending: %v", payment.Reference, rerr)
			}
			return models.Payment{}, err
		}
		s.notify(ctx, payment.UserID, "Payment received",
			fmt.Sprintf("Your payment of %s %s was successful", strconv.FormatFloat(payment.Amount, 'f', 0, 64), payment.Currency))
	} else {
		s.notify(ctx, payment.UserID, "Payment failed",
			"Your payment was not completed. Please try again.")
	}

	return s.PaymentRepo.GetPaymentByReference(ctx, payment.Reference)
}

func (s *PaymentService) applyPurpose(ctx context.Context, payment models.Payment) error {
	switch payment.Purpose {
	case models.PaymentPurposeSubscription:
		return s.Subscriptions.ActivatePlan(ctx, payment.UserID, payment.Plan)
	case models.PaymentPurposeBooking:
		return s.BookingRepo.MarkPaid(ctx, payment.TargetID)
	}
	return nil
}

func (s *PaymentService) GetPaymentsByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	return s.PaymentRepo.GetPaymentsByUser(ctx, userID)
}

func (s *PaymentService) notify(ctx context.Context, userID int, title, body string) {
	if s.Notifications == nil {
		return
	}
	if err := s.Notifications.Notify(ctx, userID, title, body, "/payments"); err != nil {
		log.Printf("payment: notify user %d: %v", userID, err)
	}
}
