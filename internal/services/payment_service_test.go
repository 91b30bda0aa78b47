package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nyumbaBack/internal/models"
)

// A callback body is never trusted; settlement only follows the state the
// provider reports. Repos are left nil so any settlement attempt panics the
// test.
func TestPendingProviderStateDoesNotSettle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay/ref-11", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"amount":   "5000",
			"currency": "XAF",
			"status":   "PENDING",
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := &PaymentService{Momo: newTestMomo(t, srv.URL)}
	payment := models.Payment{
		Reference: "ref-11",
		UserID:    4,
		Purpose:   models.PaymentPurposeSubscription,
		Plan:      "basic",
		Status:    models.PaymentPending,
	}

	got, err := svc.confirmWithProvider(context.Background(), payment)
	if err != nil {
		t.Fatalf("confirmWithProvider: %v", err)
	}
	if got.Status != models.PaymentPending {
		t.Errorf("status = %q, want %q", got.Status, models.PaymentPending)
	}
}

func TestSettledPaymentNotReconfirmed(t *testing.T) {
	// no provider wired in; a terminal row must not trigger a round-trip
	svc := &PaymentService{}
	payment := models.Payment{Reference: "ref-12", Status: models.PaymentSuccessful}

	got, err := svc.confirmWithProvider(context.Background(), payment)
	if err != nil {
		t.Fatalf("confirmWithProvider: %v", err)
	}
	if got.Status != models.PaymentSuccessful {
		t.Errorf("status = %q, want %q", got.Status, models.PaymentSuccessful)
	}
}
