package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestMomo(t *testing.T, baseURL string) *MomoService {
	t.Helper()
	s, err := NewMomoService(MomoConfig{
		BaseURL:           baseURL,
		SubscriptionKey:   "sub-key",
		APIUser:           "api-user",
		APIKey:            "api-key",
		TargetEnvironment: "sandbox",
		CallbackURL:       "https://example.com/callback",
	})
	if err != nil {
		t.Fatalf("NewMomoService: %v", err)
	}
	return s
}

func TestNewMomoServiceValidation(t *testing.T) {
	_, err := NewMomoService(MomoConfig{BaseURL: "https://sandbox.momodeveloper.mtn.com"})
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestRequestToPaySendsHeaders(t *testing.T) {
	var tokenCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api-user" || pass != "api-key" {
			t.Errorf("unexpected basic auth: %s / %s", user, pass)
		}
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "sub-key" {
			t.Errorf("subscription key = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("X-Reference-Id"); got != "ref-1" {
			t.Errorf("reference = %q", got)
		}
		if got := r.Header.Get("X-Target-Environment"); got != "sandbox" {
			t.Errorf("target environment = %q", got)
		}
		if got := r.Header.Get("X-Callback-Url"); got != "https://example.com/callback" {
			t.Errorf("callback url = %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["amount"] != "5000" || body["currency"] != "XAF" {
			t.Errorf("unexpected payload: %v", body)
		}
		w.WriteHeader(http.StatusAccepted)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	momo := newTestMomo(t, srv.URL)
	if err := momo.RequestToPay(context.Background(), "ref-1", "5000", "237650000001", "pay-1", "Subscription"); err != nil {
		t.Fatalf("RequestToPay: %v", err)
	}

	// second call reuses the cached token
	if err := momo.RequestToPay(context.Background(), "ref-1", "5000", "237650000001", "pay-1", "Subscription"); err != nil {
		t.Fatalf("RequestToPay (second): %v", err)
	}
	if n := atomic.LoadInt32(&tokenCalls); n != 1 {
		t.Errorf("token endpoint called %d times, want 1", n)
	}
}

func TestRequestToPayProviderError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate reference"}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	momo := newTestMomo(t, srv.URL)
	err := momo.RequestToPay(context.Background(), "ref-dup", "5000", "237650000001", "pay-1", "Subscription")
	if err == nil {
		t.Fatal("expected provider error")
	}
	var momoErr *MomoError
	if !errors.As(err, &momoErr) {
		t.Fatalf("expected MomoError, got %T", err)
	}
	if momoErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", momoErr.StatusCode)
	}
}

func TestGetRequestToPayStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay/ref-9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"amount":     "5000",
			"currency":   "XAF",
			"externalId": "pay-9",
			"status":     "SUCCESSFUL",
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	momo := newTestMomo(t, srv.URL)
	status, err := momo.GetRequestToPayStatus(context.Background(), "ref-9")
	if err != nil {
		t.Fatalf("GetRequestToPayStatus: %v", err)
	}
	if status.Status != "SUCCESSFUL" {
		t.Errorf("status = %q, want SUCCESSFUL", status.Status)
	}
	if status.ExternalID != "pay-9" {
		t.Errorf("externalId = %q", status.ExternalID)
	}
}
