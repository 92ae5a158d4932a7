package domain

import (
	"slices"
	"time"
)

// OAuth2 grant types.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
	GrantPassword          = "password"
	GrantClientCredentials = "client_credentials"
)

// ResponseTypeCode is the only supported authorize response type.
const ResponseTypeCode = "code"

// AuthMethodClientSecretBasic is the only token endpoint auth method offered
// to dynamically registered clients.
const AuthMethodClientSecretBasic = "client_secret_basic"

// Client is a registered OAuth2 application and its trust metadata.
type Client struct {
	ID         string
	Name       string
	SecretHash string // argon2id; empty for public clients

	GrantTypes    []string
	ResponseTypes []string
	RedirectURIs  []string // ordered, exact match
	Scopes        []string

	ClientURI       string
	LogoURI         string
	TOSURI          string
	PolicyURI       string
	SoftwareID      string
	SoftwareVersion string

	TokenEndpointAuthMethod string

	// IssueRefreshToken is set when refresh_token is among GrantTypes at
	// registration.
	IssueRefreshToken bool
	// TrustEmailVerification lets the client act for users whose email the
	// client itself has verified.
	TrustEmailVerification bool
	// SkipAuthorization lets first-party clients bypass the consent screen.
	SkipAuthorization bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPublic reports whether the client has no secret.
func (c *Client) IsPublic() bool { return c.SecretHash == "" }

// AllowsGrant reports whether grantType is registered for the client.
func (c *Client) AllowsGrant(grantType string) bool {
	return slices.Contains(c.GrantTypes, grantType)
}

// HasRedirectURI reports whether uri exactly matches a registered URI.
func (c *Client) HasRedirectURI(uri string) bool {
	return slices.Contains(c.RedirectURIs, uri)
}
