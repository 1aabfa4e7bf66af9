package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the bearer token claims. The caller identity is the
// registered subject claim.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
