package authsdk

// ErrorResponse is the OAuth2 error body (RFC 6749 section 5.2).
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// TokenResponse is the body returned by POST /o/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`

	// RefreshToken is omitted when the client is not allowed the
	// refresh_token grant.
	RefreshToken string `json:"refresh_token,omitempty"`

	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	Scope     string `json:"scope"`
}

// RegistrationRequest is the dynamic client registration payload accepted
// by POST /o/register.
type RegistrationRequest struct {
	ClientName              string   `json:"client_name"`
	ClientURI               string   `json:"client_uri"`
	RedirectURIs            []string `json:"redirect_uris"`
	GrantTypes              []string `json:"grant_types,omitempty"`
	ResponseTypes           []string `json:"response_types,omitempty"`
	LogoURI                 string   `json:"logo_uri,omitempty"`
	TOSURI                  string   `json:"tos_uri,omitempty"`
	PolicyURI               string   `json:"policy_uri,omitempty"`
	SoftwareID              string   `json:"software_id,omitempty"`
	SoftwareVersion         string   `json:"software_version,omitempty"`
	Scope                   string   `json:"scope,omitempty"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method,omitempty"`
}

// RegistrationResponse carries freshly issued client credentials. A zero
// ClientSecretExpiresAt means the secret does not expire.
type RegistrationResponse struct {
	ClientID              string `json:"client_id"`
	ClientSecret          string `json:"client_secret"`
	ClientIDIssuedAt      int64  `json:"client_id_issued_at"`
	ClientSecretExpiresAt int64  `json:"client_secret_expires_at"`

	// Echoed registration metadata.
	ClientName              string   `json:"client_name"`
	ClientURI               string   `json:"client_uri"`
	RedirectURIs            []string `json:"redirect_uris"`
	GrantTypes              []string `json:"grant_types"`
	ResponseTypes           []string `json:"response_types"`
	Scope                   string   `json:"scope"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method"`
}

// AuthorizeRequest is the consent submission for POST /o/authorize.
// Either Scopes or the space-delimited Scope may be used.
type AuthorizeRequest struct {
	ClientID            string   `json:"client_id"`
	RedirectURI         string   `json:"redirect_uri"`
	ResponseType        string   `json:"response_type"`
	State               string   `json:"state,omitempty"`
	Scopes              []string `json:"scopes,omitempty"`
	Scope               string   `json:"scope,omitempty"`
	CodeChallenge       string   `json:"code_challenge,omitempty"`
	CodeChallengeMethod string   `json:"code_challenge_method,omitempty"`
	Allow               bool     `json:"allow"`
}

// AuthorizeResponse is returned on consent. SuccessURL is the client's
// redirect URI with code and state (or an error) in the query.
type AuthorizeResponse struct {
	SuccessURL string `json:"success_url"`
}

// AuthorizePreflightResponse is returned by GET /o/authorize when the user
// still has to consent.
type AuthorizePreflightResponse struct {
	Application ApplicationInfo `json:"application"`
	Scopes      []string        `json:"scopes"`
	RedirectURI string          `json:"redirect_uri"`
	State       string          `json:"state,omitempty"`

	// SuccessURL is set instead when consent can be skipped.
	SuccessURL string `json:"success_url,omitempty"`
}

// ApplicationInfo is client metadata as shown to end users.
type ApplicationInfo struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Image     string `json:"image,omitempty"`
	ClientID  string `json:"clientId"`
	PolicyURI string `json:"policyUri"`
	TermsURI  string `json:"termsUri"`
}

// AuthcodeRequest is the body of POST /o/token-exchange.
type AuthcodeRequest struct {
	Code string `json:"code"`
}

// AuthcodeMintResponse is returned by POST /o/authcode.
type AuthcodeMintResponse struct {
	Code      string `json:"code"`
	ExpiresIn int    `json:"expires_in"`
}

// IssuedToken describes one live access token of the caller.
type IssuedToken struct {
	EntityType  string          `json:"entityType"`
	EntityID    string          `json:"entityId"`
	Application ApplicationInfo `json:"application"`
	Scope       []string        `json:"scope"`
	Expires     string          `json:"expires"` // RFC3339
	Created     string          `json:"created"` // RFC3339
}

// TokenListResponse is the envelope of GET /v2/auth/tokens.
type TokenListResponse struct {
	Status Status        `json:"status"`
	Result []IssuedToken `json:"result"`
}

// Status is the v2 API envelope status block.
type Status struct {
	Success     bool   `json:"success"`
	Description string `json:"description"`
}

// Manifest is the Badge Connect manifest served per domain.
type Manifest struct {
	Context         string          `json:"@context"`
	ID              string          `json:"id"`
	BadgeConnectAPI []ManifestEntry `json:"badgeConnectAPI"`
}

// ManifestEntry describes one Badge Connect API provider.
type ManifestEntry struct {
	Name              string   `json:"name"`
	Image             string   `json:"image,omitempty"`
	APIBase           string   `json:"apiBase"`
	Version           string   `json:"version"`
	TermsOfServiceURL string   `json:"termsOfServiceUrl,omitempty"`
	PrivacyPolicyURL  string   `json:"privacyPolicyUrl,omitempty"`
	ScopesOffered     []string `json:"scopesOffered"`
	ScopesRequested   []string `json:"scopesRequested,omitempty"`
	RegistrationURL   string   `json:"registrationUrl"`
	AuthorizationURL  string   `json:"authorizationUrl"`
	TokenURL          string   `json:"tokenUrl"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Backoff  string `json:"backoff"`
}
