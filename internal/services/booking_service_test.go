package services

import (
	"context"
	"errors"
	"testing"

	"nyumbaBack/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingDeclined, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingDeclined, false},
		{models.BookingDeclined, models.BookingConfirmed, false},
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingCancelled, models.BookingPending, false},
	}
	for _, c := range cases {
		t.Run(c.from+"_to_"+c.to, func(t *testing.T) {
			if got := canTransition(c.from, c.to); got != c.want {
				t.Errorf("canTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
			}
		})
	}
}

func TestAllowedActor(t *testing.T) {
	cases := []struct {
		to         string
		isProvider bool
		want       bool
	}{
		{models.BookingConfirmed, true, true},
		{models.BookingConfirmed, false, false},
		{models.BookingDeclined, true, true},
		{models.BookingDeclined, false, false},
		{models.BookingCompleted, true, true},
		{models.BookingCompleted, false, false},
		{models.BookingCancelled, false, true},
		{models.BookingCancelled, true, false},
		{models.BookingPending, true, false},
	}
	for _, c := range cases {
		if got := allowedActor(c.to, c.isProvider); got != c.want {
			t.Errorf("allowedActor(%q, provider=%v) = %v, want %v", c.to, c.isProvider, got, c.want)
		}
	}
}

func TestChangeStatusUnknownTarget(t *testing.T) {
	// rejected before any lookup, so an empty service is enough
	s := &BookingService{}
	_, err := s.ChangeStatus(context.Background(), 1, 1, "frobnicate")
	if !errors.Is(err, models.ErrUnknownBookingStatus) {
		t.Errorf("err = %v, want ErrUnknownBookingStatus", err)
	}
}
