package domain

import "time"

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "Bearer"

// TokenPair is what a successful grant hands back. RefreshToken is empty
// when the client does not get refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
	Scopes       []string
}

// AccessToken is a stored opaque bearer token. UserID is empty for tokens
// minted by the client_credentials grant.
type AccessToken struct {
	ID        string
	UserID    string
	ClientID  string
	TokenHash string // base64url SHA-256 of the bearer value
	Scopes    []string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the token can no longer authenticate.
func (t *AccessToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// RefreshToken is linked one-to-one to the access token it was issued with.
type RefreshToken struct {
	ID            string
	AccessTokenID string
	UserID        string
	ClientID      string
	TokenHash     string
	Scopes        []string
	ExpiresAt     time.Time
	Revoked       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IssuedToken is an access token joined with its client, as listed to the
// token owner.
type IssuedToken struct {
	Token  AccessToken
	Client Client
}
