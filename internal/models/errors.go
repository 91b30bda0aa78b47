package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicatePhone     = errors.New("models: duplicate phone number")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrUserBlocked        = errors.New("models: user is blocked")
	ErrInvalidPassword    = errors.New("models: invalid password")
	ErrInvalidCode        = errors.New("models: invalid or expired verification code")
	ErrSessionNotFound    = errors.New("models: session not found")
	ErrForbidden          = errors.New("models: forbidden")

	ErrPropertyNotFound = errors.New("property not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCityNotFound     = errors.New("city not found")

	ErrAlreadyReviewed = errors.New("user already reviewed this listing")
	ErrReviewNotFound  = errors.New("review not found")

	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidBookingState  = errors.New("invalid booking state transition")
	ErrUnknownBookingStatus = errors.New("unknown booking status")

	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")

	ErrPaymentNotFound    = errors.New("payment not found")
	ErrNoListingSlots     = errors.New("no active listing slots, subscription required")
	ErrSubscriptionExists = errors.New("subscription already active")

	ErrAssetNotFound     = errors.New("maintenance asset not found")
	ErrComplaintNotFound = errors.New("complaint not found")
)
