package service

import (
	"context"
	"testing"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/authcode"
	"github.com/snehalbaghel/badgr-server/pkg/otelx"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func rejectedReasons(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "oauth.authcode.rejected" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				reason, _ := dp.Attributes.Value("reason")
				out[reason.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestAuthcodeService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newTestClock()
	s := newTestStore(t)
	seedUser(t, s, "mallory@example.com", true)
	seedClient(t, s, passwordClient(), "")

	tokens := newTokenService(s, clock)
	pair, err := tokens.ExchangePassword(ctx, PasswordRequest{Username: "mallory@example.com", Password: testPassword})
	require.NoError(t, err)

	codec, err := authcode.NewWithClock([]byte("0123456789abcdef0123456789abcdef"), clock.Now)
	require.NoError(t, err)

	reader := sdkmetric.NewManualReader()
	inst, err := otelx.New(otelx.Config{Enabled: true, Reader: reader})
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })

	svc := &AuthcodeService{Store: s, Codec: codec, TTL: time.Minute, Metrics: inst.Metrics(), Now: clock.Now}

	code, ttl, err := svc.Mint(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, time.Minute, ttl)
	require.NotContains(t, code, pair.AccessToken)

	t.Run("round trip", func(t *testing.T) {
		got, err := svc.Exchange(ctx, code)
		require.NoError(t, err)
		require.Equal(t, pair.AccessToken, got.AccessToken)
		require.Equal(t, pair.Scopes, got.Scopes)
		require.Equal(t, time.Hour, got.ExpiresIn)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Exchange(ctx, "not-a-code")
		require.ErrorIs(t, err, ErrInvalidAuthcode)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := codec.Encode(pair.AccessToken, 0)
		require.NoError(t, err)
		_, err = svc.Exchange(ctx, expired)
		require.ErrorIs(t, err, ErrInvalidAuthcode)
	})

	t.Run("revoked token", func(t *testing.T) {
		other, err := tokens.ExchangePassword(ctx, PasswordRequest{Username: "mallory@example.com", Password: testPassword})
		require.NoError(t, err)
		c, _, err := svc.Mint(ctx, other.AccessToken)
		require.NoError(t, err)

		require.NoError(t, tokens.Revoke(ctx, DefaultClientID, "", other.AccessToken, "access_token"))
		_, err = svc.Exchange(ctx, c)
		require.ErrorIs(t, err, ErrInvalidAuthcode)
	})

	t.Run("mint needs a live token", func(t *testing.T) {
		_, _, err := svc.Mint(ctx, "unknown")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	require.Equal(t, map[string]int64{"malformed": 1, "expired": 1, "revoked": 1}, rejectedReasons(t, reader))
}
