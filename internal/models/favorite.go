package models

import "time"

type Favorite struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	ListingType string    `json:"listing_type"`
	ListingID   int       `json:"listing_id"`
	CreatedAt   time.Time `json:"created_at"`
}
