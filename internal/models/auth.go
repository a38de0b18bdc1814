package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued tokens and admin info.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	Admin        AdminInfo `json:"admin"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse returns the refreshed token pair.
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}

// AdminInfo describes the authenticated admin in responses.
type AdminInfo struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Role    AdminRole `json:"role"`
	Faculty string    `json:"faculty,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens. Faculty is carried
// so Dean approvals can be faculty-checked without a directory lookup.
type JWTClaims struct {
	AdminID string    `json:"admin_id"`
	Role    AdminRole `json:"role"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Faculty string    `json:"faculty,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts token claims into a workflow actor.
func (c *JWTClaims) Actor() Actor {
	return Actor{ID: c.AdminID, Name: c.Name, Email: c.Email, Role: c.Role, Faculty: c.Faculty}
}
