package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	booking.ClientID = userIDFromContext(r)

	created, err := h.Service.CreateBooking(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrListingNotFound),
			errors.Is(err, models.ErrPropertyNotFound),
			errors.Is(err, models.ErrServiceNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.Service.GetBookingByID(r.Context(), getIntParam(r, "id"), userIDFromContext(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your booking", http.StatusForbidden)
		default:
			http.Error(w, "Failed to fetch booking", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.GetBookingsByClient(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch bookings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) GetIncomingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.GetBookingsByProvider(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch bookings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req models.BookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.ChangeStatus(r.Context(), getIntParam(r, "id"), userIDFromContext(r), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your booking", http.StatusForbidden)
		case errors.Is(err, models.ErrUnknownBookingStatus):
			http.Error(w, "Unknown booking status", http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidBookingState):
			http.Error(w, "Invalid status transition", http.StatusConflict)
		default:
			http.Error(w, "Failed to update booking", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(booking)
}
