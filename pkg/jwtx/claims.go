package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the claims of an internally issued exchange token. Purpose
// binds a token to the flow that minted it so a token minted for one
// exchange cannot be replayed into another.
type Claims struct {
	jwt.RegisteredClaims

	Purpose string `json:"pur,omitempty"`
}

// NewClaims builds claims for subject valid for ttl from now. A ttl of zero
// or less produces claims that are already expired.
func NewClaims(subject, purpose, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Purpose: purpose,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidatePurpose checks the pur claim.
func (c *Claims) ValidatePurpose(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Purpose != expected {
		return ErrPurpose
	}
	return nil
}
