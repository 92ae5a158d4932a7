package http_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func registration() authsdk.RegistrationRequest {
	return authsdk.RegistrationRequest{
		ClientName:    "Backpack Connect",
		ClientURI:     "https://connect.example.org",
		RedirectURIs:  []string{"https://connect.example.org/callback"},
		GrantTypes:    []string{"authorization_code", "refresh_token"},
		ResponseTypes: []string{"code"},
		LogoURI:       "https://connect.example.org/logo.png",
		TOSURI:        "https://connect.example.org/tos",
		PolicyURI:     "https://connect.example.org/privacy",
		Scope:         "https://purl.imsglobal.org/spec/ob/v2p1/scope/assertion.readonly",
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.sdk.Register(ctx, registration())
	require.NoError(t, err)
	require.NotEmpty(t, res.ClientID)
	require.NotEmpty(t, res.ClientSecret)
	require.NotZero(t, res.ClientIDIssuedAt)
	require.Zero(t, res.ClientSecretExpiresAt)
	require.Equal(t, "client_secret_basic", res.TokenEndpointAuthMethod)
	require.Equal(t, []string{"code"}, res.ResponseTypes)

	stored, err := env.store.Clients().GetClientByID(ctx, res.ClientID)
	require.NoError(t, err)
	require.True(t, stored.IssueRefreshToken)
	require.Equal(t, "https://connect.example.org/privacy", stored.PolicyURI)

	// The same redirect URI cannot be claimed twice.
	again := registration()
	again.ClientURI = "https://connect.example.org/other"
	_, err = env.sdk.Register(ctx, again)
	var regErr *authsdk.RegistrationError
	require.ErrorAs(t, err, &regErr)
	require.Equal(t, service.MsgRedirectURITaken, regErr.Message)
}

func TestRegister_ErrorsUseStatusOK(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*authsdk.RegistrationRequest)
		msg    string
	}{
		{"missing name", func(r *authsdk.RegistrationRequest) { r.ClientName = "" }, service.MsgMissingFields},
		{"http redirect", func(r *authsdk.RegistrationRequest) { r.RedirectURIs = []string{"http://connect.example.org/cb"} }, service.MsgURISchemeNotHTTPS},
		{"foreign logo host", func(r *authsdk.RegistrationRequest) { r.LogoURI = "https://cdn.example.net/logo.png" }, service.MsgURIHostMismatch},
		{"native scope", func(r *authsdk.RegistrationRequest) { r.Scope = "rw:profile" }, service.MsgInvalidScope},
		{"auth method", func(r *authsdk.RegistrationRequest) { r.TokenEndpointAuthMethod = "none" }, service.MsgInvalidAuthMethod},
		{"no code grant", func(r *authsdk.RegistrationRequest) { r.GrantTypes = []string{"refresh_token"} }, service.MsgMissingAuthCodeGrant},
		{"password grant", func(r *authsdk.RegistrationRequest) { r.GrantTypes = []string{"authorization_code", "password"} }, service.MsgInvalidGrantTypes},
		{"token response", func(r *authsdk.RegistrationRequest) { r.ResponseTypes = []string{"token"} }, service.MsgInvalidResponseType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registration()
			tt.mutate(&req)

			_, err := env.sdk.Register(context.Background(), req)
			var regErr *authsdk.RegistrationError
			require.ErrorAs(t, err, &regErr)
			require.Equal(t, tt.msg, regErr.Message)
		})
	}

	clients, err := env.clients.ListClients(context.Background())
	require.NoError(t, err)
	require.Empty(t, clients)
}

func TestRegister_MalformedBody(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, err := http.Post(env.srv.URL+authsdk.PathRegister, "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
