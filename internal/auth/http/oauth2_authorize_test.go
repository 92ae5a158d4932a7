package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	authhttp "github.com/snehalbaghel/badgr-server/internal/auth/http"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_RequiresSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	client := env.webClient(t)

	_, err := env.sdk.Authorize(context.Background(), "", authsdk.AuthorizeRequest{
		ClientID:    client.ID,
		RedirectURI: testRedirect,
		Allow:       true,
	})
	requireOAuthError(t, err, http.StatusUnauthorized, "login_required")

	_, err = env.sdk.Authorize(context.Background(), "not-a-token", authsdk.AuthorizeRequest{
		ClientID:    client.ID,
		RedirectURI: testRedirect,
		Allow:       true,
	})
	requireOAuthError(t, err, http.StatusUnauthorized, "login_required")
}

func TestAuthorize_ExpiredSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, "ada@example.com", true)
	bearer := env.passwordToken(t, "ada@example.com").AccessToken
	client := env.webClient(t)

	env.clock.Advance(2 * time.Hour) // past the one hour access TTL

	_, err := env.sdk.Authorize(context.Background(), bearer, authsdk.AuthorizeRequest{
		ClientID:    client.ID,
		RedirectURI: testRedirect,
		Allow:       true,
	})
	requireOAuthError(t, err, http.StatusUnauthorized, "login_required")
}

func TestAuthorize_SessionCookieAndForm(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, "ada@example.com", true)
	bearer := env.passwordToken(t, "ada@example.com").AccessToken
	client := env.webClient(t)

	form := url.Values{
		"client_id":     {client.ID},
		"redirect_uri":  {testRedirect},
		"response_type": {"code"},
		"scope":         {"rw:profile"},
		"state":         {"s1"},
		"allow":         {"true"},
	}
	req, err := http.NewRequest(http.MethodPost, env.srv.URL+authsdk.PathAuthorize, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: authhttp.SessionCookieName, Value: bearer})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out authsdk.AuthorizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, strings.HasPrefix(out.SuccessURL, testRedirect+"?"))

	code, state, err := authsdk.ParseAuthorizationCallback(out.SuccessURL)
	require.NoError(t, err)
	require.NotEmpty(t, code)
	require.Equal(t, "s1", state)
}

func TestAuthorize_Deny(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, "ada@example.com", true)
	bearer := env.passwordToken(t, "ada@example.com").AccessToken
	client := env.webClient(t)

	resp, err := env.sdk.Authorize(context.Background(), bearer, authsdk.AuthorizeRequest{
		ClientID:    client.ID,
		RedirectURI: testRedirect,
		State:       "s2",
		Allow:       false,
	})
	require.NoError(t, err)

	u, err := url.Parse(resp.SuccessURL)
	require.NoError(t, err)
	require.Equal(t, "access_denied", u.Query().Get("error"))
	require.Equal(t, "s2", u.Query().Get("state"))
	require.Empty(t, u.Query().Get("code"))
}

func TestAuthorize_Rejections(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, "ada@example.com", true)
	bearer := env.passwordToken(t, "ada@example.com").AccessToken
	client := env.webClient(t)
	public := env.createClient(t, service.ClientSpec{
		Name:         "SPA",
		GrantTypes:   []string{"authorization_code"},
		RedirectURIs: []string{testRedirect},
		Scopes:       []string{"rw:profile"},
	})

	tests := []struct {
		name   string
		req    authsdk.AuthorizeRequest
		status int
		code   string
	}{
		{
			name:   "redirect uri not registered",
			req:    authsdk.AuthorizeRequest{ClientID: client.ID, RedirectURI: testRedirect + "/other", Allow: true},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name:   "scope outside client scopes",
			req:    authsdk.AuthorizeRequest{ClientID: client.ID, RedirectURI: testRedirect, Scope: "rw:issuer", Allow: true},
			status: http.StatusBadRequest,
			code:   "invalid_scope",
		},
		{
			name:   "unsupported response type",
			req:    authsdk.AuthorizeRequest{ClientID: client.ID, RedirectURI: testRedirect, ResponseType: "token", Allow: true},
			status: http.StatusBadRequest,
			code:   "unsupported_response_type",
		},
		{
			name:   "public client without challenge",
			req:    authsdk.AuthorizeRequest{ClientID: public.ID, RedirectURI: testRedirect, Allow: true},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name: "unknown pkce method",
			req: authsdk.AuthorizeRequest{
				ClientID: public.ID, RedirectURI: testRedirect, Allow: true,
				CodeChallenge: "abc", CodeChallengeMethod: "S512",
			},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name:   "unknown client",
			req:    authsdk.AuthorizeRequest{ClientID: "nope", RedirectURI: testRedirect, Allow: true},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.sdk.Authorize(context.Background(), bearer, tt.req)
			requireOAuthError(t, err, tt.status, tt.code)
		})
	}
}

func TestAuthorize_RejectsUnknownContentType(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, err := http.Post(env.srv.URL+authsdk.PathAuthorize, "text/plain", bytes.NewBufferString("allow"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthorize_Preflight(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "ada@example.com", true)
	bearer := env.passwordToken(t, "ada@example.com").AccessToken
	client := env.webClient(t)

	query := url.Values{
		"response_type": {"code"},
		"client_id":     {client.ID},
		"redirect_uri":  {testRedirect},
		"scope":         {"rw:profile"},
		"state":         {"s3"},
	}

	pre, err := env.sdk.AuthorizePreflight(ctx, bearer, query)
	require.NoError(t, err)
	require.Empty(t, pre.SuccessURL)
	require.Equal(t, "Web app", pre.Application.Name)
	require.Equal(t, client.ID, pre.Application.ClientID)
	require.Equal(t, []string{"rw:profile"}, pre.Scopes)
	require.Equal(t, "s3", pre.State)

	// approval_prompt=auto only skips consent once a grant exists.
	query.Set("approval_prompt", "auto")
	pre, err = env.sdk.AuthorizePreflight(ctx, bearer, query)
	require.NoError(t, err)
	require.Empty(t, pre.SuccessURL)

	pkce, err := authsdk.GeneratePKCEChallenge()
	require.NoError(t, err)
	code := authorizeCode(t, env, bearer, client, pkce)
	_, err = env.sdk.ExchangeAuthorizationCode(ctx, client, code, testRedirect, pkce.Verifier)
	require.NoError(t, err)

	pre, err = env.sdk.AuthorizePreflight(ctx, bearer, query)
	require.NoError(t, err)
	require.NotEmpty(t, pre.SuccessURL)
	_, state, err := authsdk.ParseAuthorizationCallback(pre.SuccessURL)
	require.NoError(t, err)
	require.Equal(t, "s3", state)
}

func TestAuthorize_PreflightSkipAuthorization(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, "ada@example.com", true)
	bearer := env.passwordToken(t, "ada@example.com").AccessToken
	client := env.createClient(t, service.ClientSpec{
		Name:              "First party",
		Confidential:      true,
		GrantTypes:        []string{"authorization_code"},
		RedirectURIs:      []string{testRedirect},
		Scopes:            []string{"rw:profile"},
		SkipAuthorization: true,
	})

	pre, err := env.sdk.AuthorizePreflight(context.Background(), bearer, url.Values{
		"response_type": {"code"},
		"client_id":     {client.ID},
		"redirect_uri":  {testRedirect},
	})
	require.NoError(t, err)
	require.NotEmpty(t, pre.SuccessURL)
}
