package models

import "time"

type Review struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	ListingType    string     `json:"listing_type"` // property | service
	ListingID      int        `json:"listing_id"`
	Rating         int        `json:"rating"`
	Comment        string     `json:"comment"`
	UserName       string     `json:"user_name,omitempty"`
	UserSurname    string     `json:"user_surname,omitempty"`
	UserAvatarPath *string    `json:"user_avatar_path,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
