package models

import "time"

// MaintenanceAsset is a serviceable installation attached to a property
// (generator, water heater, borehole pump and so on). next due date derives
// from last_serviced_at + interval_days.
type MaintenanceAsset struct {
	ID             int        `json:"id"`
	PropertyID     int        `json:"property_id"`
	OwnerID        int        `json:"owner_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	IntervalDays   int        `json:"interval_days"`
	LastServicedAt time.Time  `json:"last_serviced_at"`
	NextDueAt      time.Time  `json:"next_due_at"`
	NotifiedAt     *time.Time `json:"notified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
