package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleClient   = "client"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type User struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Surname       string     `json:"surname"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	Password      string     `json:"password,omitempty"`
	City          string     `json:"city"`
	Role          string     `json:"role"`
	AvatarPath    *string    `json:"avatar_path,omitempty"`
	PhoneVerified bool       `json:"phone_verified"`
	Blocked       bool       `json:"blocked"`
	ReviewRating  float64    `json:"review_rating"`
	ReviewsCount  int        `json:"reviews_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session is the opaque refresh-session record kept in Redis with a TTL.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignInRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

type UpdatePasswordRequest struct {
	UserID      int    `json:"user_id"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}
