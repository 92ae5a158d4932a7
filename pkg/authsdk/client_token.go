package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ClientCredentials identifies an OAuth2 client. Secret is empty for public
// clients.
type ClientCredentials struct {
	ID     string
	Secret string
}

func (cc ClientCredentials) apply(data url.Values) {
	if cc.ID != "" {
		data.Set("client_id", cc.ID)
	}
	if cc.Secret != "" {
		data.Set("client_secret", cc.Secret)
	}
}

// ExchangeAuthorizationCode redeems an authorization code. verifier is the
// PKCE code_verifier, empty when no challenge was sent.
func (c *SDKClient) ExchangeAuthorizationCode(ctx context.Context, client ClientCredentials, code, redirectURI, verifier string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {redirectURI},
	}
	if verifier != "" {
		data.Set("code_verifier", verifier)
	}
	client.apply(data)
	return c.requestToken(ctx, data)
}

// RefreshGrant rotates a refresh token. The old pair stops working.
func (c *SDKClient) RefreshGrant(ctx context.Context, client ClientCredentials, refreshToken string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	client.apply(data)
	return c.requestToken(ctx, data)
}

// PasswordGrant authenticates a user directly. Repeated failures lock the
// (username, address) pair out with 429 responses.
func (c *SDKClient) PasswordGrant(ctx context.Context, client ClientCredentials, username, password string, scopes []string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}
	if len(scopes) > 0 {
		data.Set("scope", strings.Join(scopes, " "))
	}
	client.apply(data)
	return c.requestToken(ctx, data)
}

// ClientCredentialsGrant obtains a token for the client itself. Repeat calls
// with the same scope replace the previous token value.
func (c *SDKClient) ClientCredentialsGrant(ctx context.Context, client ClientCredentials, scopes []string) (*TokenResponse, error) {
	data := url.Values{"grant_type": {"client_credentials"}}
	if len(scopes) > 0 {
		data.Set("scope", strings.Join(scopes, " "))
	}
	client.apply(data)
	return c.requestToken(ctx, data)
}

// RevokeToken revokes an access or refresh token (RFC 7009). Unknown tokens
// are not an error.
func (c *SDKClient) RevokeToken(ctx context.Context, client ClientCredentials, token string) error {
	data := url.Values{"token": {token}}
	client.apply(data)

	resp, err := c.postForm(ctx, PathRevoke, data, "")
	if err != nil {
		return err
	}
	var discard map[string]any
	return decodeJSON(resp, &discard, http.StatusOK)
}

func (c *SDKClient) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	resp, err := c.postForm(ctx, PathToken, data, "")
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
