package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nyumbaBack/internal/services"
)

func TestCreateBookingInvalidBody(t *testing.T) {
	h := &BookingHandler{}

	r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.CreateBooking(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	h := &BookingHandler{Service: &services.BookingService{}}

	r := httptest.NewRequest(http.MethodPut, "/api/bookings/1/status",
		strings.NewReader(`{"status":"frobnicate"}`))
	w := httptest.NewRecorder()
	h.ChangeStatus(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChangeStatusInvalidBody(t *testing.T) {
	h := &BookingHandler{}

	r := httptest.NewRequest(http.MethodPut, "/api/bookings/1/status", strings.NewReader(""))
	w := httptest.NewRecorder()
	h.ChangeStatus(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
