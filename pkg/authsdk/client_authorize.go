package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
)

// PKCEChallenge holds a verifier and the S256 challenge derived from it.
type PKCEChallenge struct {
	Verifier  string
	Challenge string
	Method    string
}

// GeneratePKCEChallenge creates a random 43 character verifier and its S256
// challenge (RFC 7636).
func GeneratePKCEChallenge() (*PKCEChallenge, error) {
	verifier, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PKCE verifier: %w", err)
	}
	return NewPKCEChallenge(verifier, cryptox.PKCEMethodS256), nil
}

// NewPKCEChallenge wraps a caller chosen verifier.
func NewPKCEChallenge(verifier, method string) *PKCEChallenge {
	return &PKCEChallenge{
		Verifier:  verifier,
		Challenge: cryptox.PKCEChallenge(verifier, method),
		Method:    method,
	}
}

// BuildAuthorizeURL returns the GET /o/authorize URL a browser would be sent
// to for the given parameters.
func (c *SDKClient) BuildAuthorizeURL(clientID, redirectURI, state string, scopes []string, pkce *PKCEChallenge) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", clientID)
	params.Set("redirect_uri", redirectURI)
	if state != "" {
		params.Set("state", state)
	}
	if len(scopes) > 0 {
		params.Set("scope", strings.Join(scopes, " "))
	}
	if pkce != nil {
		params.Set("code_challenge", pkce.Challenge)
		params.Set("code_challenge_method", pkce.Method)
	}
	return c.url(PathAuthorize) + "?" + params.Encode()
}

// Authorize submits consent on behalf of the user identified by
// accessToken and returns the success URL.
func (c *SDKClient) Authorize(ctx context.Context, accessToken string, req AuthorizeRequest) (*AuthorizeResponse, error) {
	if req.ResponseType == "" {
		req.ResponseType = "code"
	}

	resp, err := c.postJSON(ctx, PathAuthorize, req, accessToken)
	if err != nil {
		return nil, err
	}

	var out AuthorizeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuthorizePreflight fetches the consent screen data for an authorize URL's
// query parameters.
func (c *SDKClient) AuthorizePreflight(ctx context.Context, accessToken string, query url.Values) (*AuthorizePreflightResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, PathAuthorize+"?"+query.Encode(), nil, nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out AuthorizePreflightResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseAuthorizationCallback extracts code and state from a success URL, or
// returns the error carried in it.
func ParseAuthorizationCallback(callbackURL string) (code, state string, err error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse callback URL: %w", err)
	}

	q := u.Query()
	if e := q.Get("error"); e != "" {
		return "", "", fmt.Errorf("authorization error: %s - %s", e, q.Get("error_description"))
	}

	code = q.Get("code")
	if code == "" {
		return "", "", fmt.Errorf("callback missing authorization code")
	}
	return code, q.Get("state"), nil
}
