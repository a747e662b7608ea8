package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the identity asserted by the auth provider
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name,omitempty"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Fingerprint changes whenever the profile fields stored locally change
func (c *Claims) Fingerprint() string {
	return c.Email + "|" + c.Name + "|" + c.Role
}
