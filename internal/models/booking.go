package models

import "time"

// Booking statuses. A booking targets either a home service (job) or a
// property (viewing).
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingDeclined  = "declined"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"

	BookingTargetService  = "service"
	BookingTargetProperty = "property"
)

type Booking struct {
	ID          int        `json:"id"`
	TargetType  string     `json:"target_type"`
	TargetID    int        `json:"target_id"`
	TargetTitle string     `json:"target_title"`
	ClientID    int        `json:"client_id"`
	ProviderID  int        `json:"provider_id"`
	Client      Owner      `json:"client"`
	Provider    Owner      `json:"provider"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	Note        string     `json:"note"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	Paid        bool       `json:"paid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}
