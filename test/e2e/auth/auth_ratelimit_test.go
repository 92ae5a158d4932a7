package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitTokenEndpoint verifies /o/token uses the strict profile
// (5 requests a minute per address) when no overrides are set.
func TestRateLimitTokenEndpoint(t *testing.T) {
	svc := startAuthServiceWithEnv(t, nil)
	ctx := context.Background()

	creds := authsdk.ClientCredentials{ID: "nobody", Secret: "nothing"}
	for i := range 5 {
		_, err := svc.sdk.ClientCredentialsGrant(ctx, creds, nil)
		requireOAuthError(t, err, http.StatusBadRequest, "invalid_client")
		t.Logf("request %d rejected by the handler", i+1)
	}

	_, err := svc.sdk.ClientCredentialsGrant(ctx, creds, nil)
	oerr := requireOAuthError(t, err, http.StatusTooManyRequests, "rate_limit_exceeded")
	require.Positive(t, oerr.RetryAfter)
}

// TestRateLimitHealthIsLenient verifies probes are not throttled at the
// strict rate.
func TestRateLimitHealthIsLenient(t *testing.T) {
	svc := startAuthServiceWithEnv(t, nil)

	for range 20 {
		resp, err := http.Get(svc.baseURL + authsdk.PathLivez)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
