package models

import (
	"time"
)

const (
	PriceTypeFixed  = "fixed"
	PriceTypeHourly = "hourly"
)

type Service struct {
	ID              int     `json:"id"`
	UserID          int     `json:"user_id"`
	User            Owner   `json:"user"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	CategoryID      int     `json:"category_id"`
	SubcategoryID   int     `json:"subcategory_id,omitempty"`
	CategoryName    string  `json:"category_name"`
	SubcategoryName string  `json:"subcategory_name"`
	Price           float64 `json:"price"`
	PriceType       string  `json:"price_type"`
	CityID          int     `json:"city_id"`
	CityName        string  `json:"city_name"`
	Address         string  `json:"address"`
	Images          []Image `json:"images"`

	VerificationStatus string  `json:"verification_status"`
	RejectionReason    *string `json:"rejection_reason,omitempty"`
	Archived           bool    `json:"archived"`

	AvgRating    float64 `json:"avg_rating"`
	ReviewsCount int     `json:"reviews_count"`
	Liked        bool    `json:"liked"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ServiceFilterRequest struct {
	CategoryIDs    []int   `json:"category_id"`
	SubcategoryIDs []int   `json:"subcategory_id"`
	CityIDs        []int   `json:"city_id"`
	PriceFrom      float64 `json:"price_from"`
	PriceTo        float64 `json:"price_to"`
	AvgRatings     []int   `json:"avg_rating"`
	Sorting        int     `json:"sorting"` // 1 - by reviews, 2 - price desc, 3 - price asc
	Page           int     `json:"page"`
	Limit          int     `json:"limit"`
	UserID         int     `json:"user_id,omitempty"`
}

type ServiceListResponse struct {
	Services []Service `json:"services"`
	Total    int       `json:"total"`
	MinPrice float64   `json:"min_price"`
	MaxPrice float64   `json:"max_price"`
}
