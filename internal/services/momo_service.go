package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// MomoConfig configures the MTN Mobile Money collection client.
type MomoConfig struct {
	// Base of the collection API, e.g. https://sandbox.momodeveloper.mtn.com
	BaseURL string

	SubscriptionKey string // Ocp-Apim-Subscription-Key
	APIUser         string // basic-auth user for the token endpoint
	APIKey          string // basic-auth password for the token endpoint

	// "sandbox" or "mtncameroon" etc.
	TargetEnvironment string

	// Where the provider posts request-to-pay outcomes.
	CallbackURL string

	Currency string // XAF unless overridden

	Client *http.Client
	Logger *slog.Logger
}

type MomoService struct {
	baseURL           *url.URL
	subscriptionKey   string
	apiUser           string
	apiKey            string
	targetEnvironment string
	callbackURL       string
	currency          string

	httpClient *http.Client
	logger     *slog.Logger

	// token cache
	mu          sync.Mutex
	accessToken string
	tokenExp    time.Time
}

// MomoError is returned for non-2xx provider responses.
type MomoError struct {
	StatusCode int
	Body       string
}

func (e *MomoError) Error() string {
	return fmt.Sprintf("momo: provider returned %d: %s", e.StatusCode, e.Body)
}

// RequestToPayStatus is the provider's view of a collection request.
type RequestToPayStatus struct {
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	ExternalID string `json:"externalId"`
	Payer      struct {
		PartyIDType string `json:"partyIdType"`
		PartyID     string `json:"partyId"`
	} `json:"payer"`
	Status string `json:"status"` // PENDING | SUCCESSFUL | FAILED | REJECTED
	Reason string `json:"reason,omitempty"`
}

func NewMomoService(cfg MomoConfig) (*MomoService, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" ||
		strings.TrimSpace(cfg.SubscriptionKey) == "" ||
		strings.TrimSpace(cfg.APIUser) == "" ||
		strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("momo: base_url/subscription_key/api_user/api_key are required")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	env := cfg.TargetEnvironment
	if env == "" {
		env = "sandbox"
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "XAF"
	}

	s := &MomoService{
		baseURL:           u,
		subscriptionKey:   cfg.SubscriptionKey,
		apiUser:           cfg.APIUser,
		apiKey:            cfg.APIKey,
		targetEnvironment: env,
		callbackURL:       cfg.CallbackURL,
		currency:          currency,
		httpClient:        client,
		logger:            logger,
	}
	logger.Info("MoMo collection client initialized",
		"baseURL", u.Redacted(),
		"environment", env,
		"callbackURL_set", s.callbackURL != "",
	)
	return s, nil
}

func (s *MomoService) Currency() string { return s.currency }

// ensureToken returns a cached collection bearer token, refreshing it when
// less than two minutes of validity remain.
func (s *MomoService) ensureToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Until(s.tokenExp) > 2*time.Minute {
		return s.accessToken, nil
	}

	endpoint := s.baseURL.JoinPath("/collection/token/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.apiUser, s.apiKey)
	req.Header.Set("Ocp-Apim-Subscription-Key", s.subscriptionKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("momo token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &MomoError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("parse momo token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("momo token response missing access_token")
	}
	ttl := tokenResp.ExpiresIn
	if ttl <= 0 {
		ttl = 3600
	}
	s.accessToken = tokenResp.AccessToken
	s.tokenExp = time.Now().Add(time.Duration(ttl) * time.Second)
	return s.accessToken, nil
}

// RequestToPay initiates a collection. referenceID is the caller-generated
// uuid sent as X-Reference-Id; the provider answers 202 Accepted and settles
// asynchronously.
func (s *MomoService) RequestToPay(ctx context.Context, referenceID, amount, payerPhone, externalID, payerMessage string) error {
	token, err := s.ensureToken(ctx)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"amount":     amount,
		"currency":   s.currency,
		"externalId": externalID,
		"payer": map[string]string{
			"partyIdType": "MSISDN",
			"partyId":     payerPhone,
		},
		"payerMessage": payerMessage,
		"payeeNote":    payerMessage,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := s.baseURL.JoinPath("/collection/v1_0/requesttopay")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Reference-Id", referenceID)
	req.Header.Set("X-Target-Environment", s.targetEnvironment)
	req.Header.Set("Ocp-Apim-Subscription-Key", s.subscriptionKey)
	req.Header.Set("Content-Type", "application/json")
	if s.callbackURL != "" {
		req.Header.Set("X-Callback-Url", s.callbackURL)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("momo requesttopay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("momo requesttopay rejected",
			"status", resp.StatusCode, "reference", referenceID)
		return &MomoError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	s.logger.Info("momo requesttopay accepted",
		"reference", referenceID, "amount", amount, "payer", payerPhone)
	return nil
}

// GetRequestToPayStatus polls the provider for the outcome of a collection.
func (s *MomoService) GetRequestToPayStatus(ctx context.Context, referenceID string) (RequestToPayStatus, error) {
	token, err := s.ensureToken(ctx)
	if err != nil {
		return RequestToPayStatus{}, err
	}

	endpoint := s.baseURL.JoinPath("/collection/v1_0/requesttopay/", referenceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return RequestToPayStatus{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Target-Environment", s.targetEnvironment)
	req.Header.Set("Ocp-Apim-Subscription-Key", s.subscriptionKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return RequestToPayStatus{}, fmt.Errorf("momo status request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RequestToPayStatus{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return RequestToPayStatus{}, &MomoError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var status RequestToPayStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return RequestToPayStatus{}, fmt.Errorf("parse momo status response: %w", err)
	}
	return status, nil
}
