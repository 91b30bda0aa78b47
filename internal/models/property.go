package models

import (
	"time"
)

// Listing verification statuses, admin moderated. Only verified listings are
// visible in public queries.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"

	ListingTypeRent = "rent"
	ListingTypeSale = "sale"
)

type Property struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	User        Owner   `json:"user"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ListingType string  `json:"listing_type"`
	Price       float64 `json:"price"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	AreaSqm     float64 `json:"area_sqm"`
	Furnished   bool    `json:"furnished"`
	CityID      int     `json:"city_id"`
	CityName    string  `json:"city_name"`
	Address     string  `json:"address"`
	Latitude    *string `json:"latitude,omitempty"`
	Longitude   *string `json:"longitude,omitempty"`
	Images      []Image `json:"images"`
	Amenities   string  `json:"amenities"`

	VerificationStatus string  `json:"verification_status"`
	RejectionReason    *string `json:"rejection_reason,omitempty"`
	Archived           bool    `json:"archived"`

	AvgRating    float64 `json:"avg_rating"`
	ReviewsCount int     `json:"reviews_count"`
	Liked        bool    `json:"liked"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Owner is the denormalized listing owner block joined into listing rows.
type Owner struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Phone        string  `json:"phone"`
	AvatarPath   *string `json:"avatar_path,omitempty"`
	ReviewRating float64 `json:"review_rating"`
	ReviewsCount int     `json:"reviews_count"`
}

type Image struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

type PropertyFilterRequest struct {
	CityIDs     []int   `json:"city_id"`
	ListingType string  `json:"listing_type"`
	PriceFrom   float64 `json:"price_from"`
	PriceTo     float64 `json:"price_to"`
	Bedrooms    []int   `json:"bedrooms"`
	Furnished   *bool   `json:"furnished,omitempty"`
	Sorting     int     `json:"sorting"` // 1 - newest, 2 - price desc, 3 - price asc, 4 - rating
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	UserID      int     `json:"user_id,omitempty"`
}

type PropertyListResponse struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	MinPrice   float64    `json:"min_price"`
	MaxPrice   float64    `json:"max_price"`
}
