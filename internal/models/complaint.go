package models

import "time"

type Complaint struct {
	ID           int        `json:"id"`
	ReporterID   int        `json:"reporter_id"`
	ListingType  *string    `json:"listing_type,omitempty"`
	ListingID    *int       `json:"listing_id,omitempty"`
	TargetUserID *int       `json:"target_user_id,omitempty"`
	Reason       string     `json:"reason"`
	Resolved     bool       `json:"resolved"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}
