package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2/clientcredentials"
)

// TestClientCredentials_Upsert verifies a second grant replaces the client's
// token instead of adding one.
func TestClientCredentials_Upsert(t *testing.T) {
	svc := startAuthService(t, nil)
	ctx := context.Background()

	out := svc.cli(t, "client", "create", "Issuer integration",
		"--confidential",
		"--grant", "client_credentials",
		"--scope", "rw:issuer,r:profile",
	)
	machine := authsdk.ClientCredentials{ID: out["client_id"], Secret: out["client_secret"]}

	conf := clientcredentials.Config{
		ClientID:     machine.ID,
		ClientSecret: machine.Secret,
		TokenURL:     svc.baseURL + authsdk.PathToken,
		Scopes:       []string{"rw:issuer"},
	}

	first, err := conf.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, first.RefreshToken)

	second, err := conf.Token(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first.AccessToken, second.AccessToken)

	_, err = svc.sdk.ClientCredentialsGrant(ctx, authsdk.ClientCredentials{ID: machine.ID, Secret: "wrong"}, nil)
	requireOAuthError(t, err, http.StatusBadRequest, "invalid_client")
}
