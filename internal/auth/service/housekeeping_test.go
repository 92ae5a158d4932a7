package service

import (
	"context"
	"testing"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/backoff"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeeping_Cleanup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newTestClock()
	s := newTestStore(t)
	user := seedUser(t, s, "nina@example.com", true)
	client := seedClient(t, s, webClient(), "s3cret")

	authz := newAuthorizeService(s, clock)
	tokens := newTokenService(s, clock)

	code := authorizeCode(t, authz, user.ID, client.ID, nil, "", "")
	pair, err := tokens.ExchangeAuthorizationCode(ctx, client.ID, "s3cret", code, testRedirect, "")
	require.NoError(t, err)
	stale := authorizeCode(t, authz, user.ID, client.ID, nil, "", "")

	mem := backoff.NewMemoryStore()
	policy := backoff.Policy{Base: time.Second, Max: time.Minute}
	_, err = mem.Increment(ctx, backoff.Key("nina@example.com", "10.0.0.1"), clock.Now(), policy)
	require.NoError(t, err)

	hk := NewHousekeepingService(s, slogx.Discard(), time.Hour)
	hk.Now = clock.Now
	hk.Backoff = mem
	hk.BackoffPolicy = policy

	// Nothing has expired yet.
	require.Equal(t, 3, hk.Cleanup(ctx))
	_, err = s.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(pair.AccessToken))
	require.NoError(t, err)
	_, ok, _ := mem.Get(ctx, backoff.Key("nina@example.com", "10.0.0.1"))
	require.True(t, ok)

	clock.Advance(48 * time.Hour)
	require.Equal(t, 3, hk.Cleanup(ctx))

	_, err = s.AuthorizationCodes().GetAuthorizationCodeByHash(ctx, cryptox.FingerprintToken(stale))
	require.Error(t, err)
	_, err = s.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(pair.AccessToken))
	require.Error(t, err)
	_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(pair.RefreshToken))
	require.Error(t, err)
	_, ok, _ = mem.Get(ctx, backoff.Key("nina@example.com", "10.0.0.1"))
	require.False(t, ok)
}

func TestHousekeeping_StartStop(t *testing.T) {
	t.Parallel()
	hk := NewHousekeepingService(newTestStore(t), slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
