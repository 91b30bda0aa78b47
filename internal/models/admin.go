package models

import "time"

// DashboardStats is the admin panel overview block.
type DashboardStats struct {
	UsersCount        int            `json:"users_count"`
	ProvidersCount    int            `json:"providers_count"`
	PropertiesCount   int            `json:"properties_count"`
	ServicesCount     int            `json:"services_count"`
	PendingListings   int            `json:"pending_listings"`
	BookingsByStatus  map[string]int `json:"bookings_by_status"`
	PaymentsRevenue   float64        `json:"payments_revenue"`
	SignupsLast7Days  int            `json:"signups_last_7_days"`
	BookingsLast7Days int            `json:"bookings_last_7_days"`
}

type ModerationRequest struct {
	Status string `json:"status"` // verified | rejected
	Reason string `json:"reason,omitempty"`
}

type RecentSignup struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
