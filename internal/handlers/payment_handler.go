package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if req.PayerPhone == "" {
		http.Error(w, "payer_phone is required", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.InitiatePayment(r.Context(), userIDFromContext(r), req)
	if err != nil {
		var momoErr *services.MomoError
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your booking", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidBookingState):
			http.Error(w, "Booking must be confirmed before payment", http.StatusConflict)
		case errors.As(err, &momoErr):
			http.Error(w, "Payment provider rejected the request", http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(payment)
}

func (h *PaymentHandler) CheckPayment(w http.ResponseWriter, r *http.Request) {
	reference := getParam(r, "reference")
	if reference == "" {
		http.Error(w, "reference missing", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.CheckPayment(r.Context(), userIDFromContext(r), reference)
	if err != nil {
		var momoErr *services.MomoError
		switch {
		case errors.Is(err, models.ErrPaymentNotFound):
			http.Error(w, "Payment not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your payment", http.StatusForbidden)
		case errors.As(err, &momoErr):
			http.Error(w, "Payment provider unavailable", http.StatusBadGateway)
		default:
			http.Error(w, "Failed to check payment", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(payment)
}

// Callback receives the asynchronous provider outcome. Always answers 200 so
// the provider stops retrying; failures are logged and reconciled by polling.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReferenceID string `json:"referenceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("payment callback: bad body: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}
	if body.ReferenceID == "" {
		body.ReferenceID = r.Header.Get("X-Reference-Id")
	}

	if err := h.Service.HandleCallback(r.Context(), body.ReferenceID); err != nil {
		log.Printf("payment callback %s: %v", body.ReferenceID, err)
	}
	w.WriteHeader(http.StatusOK)
}

func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.GetPaymentsByUser(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch payments", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(payments)
}
