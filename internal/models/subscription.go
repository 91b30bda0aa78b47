package models

import "time"

const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"

	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// Subscription grants a provider monthly listing slots.
type Subscription struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Plan      string     `json:"plan"`
	Slots     int        `json:"slots"`
	Status    string     `json:"status"`
	RenewsAt  time.Time  `json:"renews_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SubscriptionProfile aggregates subscription state for the profile endpoint.
type SubscriptionProfile struct {
	Plan                string     `json:"plan"`
	Active              bool       `json:"active"`
	Slots               int        `json:"slots"`
	ActiveListingsCount int        `json:"active_listings_count"`
	RemainingSlots      int        `json:"remaining_slots"`
	RenewsAt            *time.Time `json:"renews_at,omitempty"`
	MonthlyAmount       float64    `json:"monthly_amount"`
}
