package models

import "time"

// Payment statuses mirror MTN MoMo request-to-pay states.
const (
	PaymentPending    = "PENDING"
	PaymentSuccessful = "SUCCESSFUL"
	PaymentFailed     = "FAILED"
	PaymentRejected   = "REJECTED"

	PaymentPurposeSubscription = "subscription"
	PaymentPurposeBooking      = "booking"
)

type Payment struct {
	ID         int        `json:"id"`
	Reference  string     `json:"reference"` // MoMo X-Reference-Id (uuid)
	UserID     int        `json:"user_id"`
	Purpose    string     `json:"purpose"`
	TargetID   int        `json:"target_id"` // booking id or subscription plan rowid
	Plan       string     `json:"plan,omitempty"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	PayerPhone string     `json:"payer_phone"`
	Status     string     `json:"status"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type PaymentRequest struct {
	Purpose    string  `json:"purpose"`
	Plan       string  `json:"plan,omitempty"`
	BookingID  int     `json:"booking_id,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	PayerPhone string  `json:"payer_phone"`
}
