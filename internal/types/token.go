package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	SessionID string `json:"sid"`
}
