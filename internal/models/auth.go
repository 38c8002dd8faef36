package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignupRequest registers a new account.
type SignupRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	Name        string  `json:"name" validate:"required,max=100"`
	Role        string  `json:"role" validate:"required,role"`
	StudentIDNo *string `json:"student_id_no" validate:"omitempty,max=30"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	Role        UserRole  `json:"role"`
	User        UserInfo  `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller handed to every service operation.
type Principal struct {
	UserID int64
	Role   UserRole
	Email  string
	Name   string
}

// Principal extracts the caller identity from the claims.
func (c *JWTClaims) Principal() Principal {
	return Principal{UserID: c.UserID, Role: c.Role, Email: c.Email, Name: c.Name}
}

// Is reports whether the principal holds the role.
func (p Principal) Is(role UserRole) bool {
	return p.Role == role
}
