package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender delivers verification and reset codes. Satisfied by SMSClient
// and stubbed in tests.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// SMSClient talks to the SMS gateway's form-encoded send endpoint.
type SMSClient struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
}

func NewSMSClient(apiKey, endpoint string) *SMSClient {
	return &SMSClient{
		APIKey:   apiKey,
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SMSClient) SendSMS(ctx context.Context, phone, message string) error {
	data := url.Values{}
	data.Set("apiKey", c.APIKey)
	data.Set("recipient", phone)
	data.Set("text", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read sms response: %w", err)
	}

	var result struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parse sms response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("sms gateway error: %s (code %d)", result.Message, result.Code)
	}
	return nil
}
