package domain

import "time"

// AuthorizationCode is a pending grant from the authorize endpoint. The code
// itself is never stored; CodeHash is its fingerprint. An exchange by the
// right client and redirect URI sets UsedAt even when the PKCE check that
// follows fails.
type AuthorizationCode struct {
	ID          string
	UserID      string
	ClientID    string
	CodeHash    string
	RedirectURI string
	Scopes      []string

	// Empty CodeChallenge means the client did not use PKCE.
	CodeChallenge       string
	CodeChallengeMethod string

	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Redeemable reports whether the code is unused and unexpired at now.
func (c *AuthorizationCode) Redeemable(now time.Time) bool {
	return c.UsedAt == nil && now.Before(c.ExpiresAt)
}
