package authcode_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/authcode"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := authcode.New([]byte("secret"))
	require.NoError(t, err)

	code, err := c.Encode("token-value", time.Minute)
	require.NoError(t, err)

	_, err = base64.RawURLEncoding.DecodeString(code)
	require.NoError(t, err, "codes are url safe")

	ref, err := c.Decode(code)
	require.NoError(t, err)
	require.Equal(t, "token-value", ref)

	// Each encoding is distinct.
	other, err := c.Encode("token-value", time.Minute)
	require.NoError(t, err)
	require.NotEqual(t, code, other)
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c, err := authcode.NewWithClock([]byte("secret"), func() time.Time { return now })
	require.NoError(t, err)

	t.Run("zero ttl is already expired", func(t *testing.T) {
		code, err := c.Encode("ref", 0)
		require.NoError(t, err)
		_, err = c.Decode(code)
		require.ErrorIs(t, err, authcode.ErrExpired)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		code, err := c.Encode("ref", 10*time.Second)
		require.NoError(t, err)

		later, err := authcode.NewWithClock([]byte("secret"), func() time.Time { return now.Add(11 * time.Second) })
		require.NoError(t, err)
		_, err = later.Decode(code)
		require.ErrorIs(t, err, authcode.ErrExpired)
	})
}

func TestMalformed(t *testing.T) {
	t.Parallel()

	c, err := authcode.New([]byte("secret"))
	require.NoError(t, err)
	code, err := c.Encode("ref", time.Minute)
	require.NoError(t, err)

	tests := map[string]string{
		"not base64": "***",
		"empty":      "",
		"truncated":  code[:10],
		"tampered":   flipMiddle(code),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(in)
			require.ErrorIs(t, err, authcode.ErrMalformed)
		})
	}

	t.Run("other secret", func(t *testing.T) {
		other, err := authcode.New([]byte("different"))
		require.NoError(t, err)
		_, err = other.Decode(code)
		require.ErrorIs(t, err, authcode.ErrMalformed)
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		_, err := authcode.New(nil)
		require.Error(t, err)
	})
}

func flipMiddle(s string) string {
	b := []byte(s)
	i := len(b) / 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
