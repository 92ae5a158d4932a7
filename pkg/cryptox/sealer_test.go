package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := cryptox.NewSealer([]byte("test-authcode-secret"))
	require.NoError(t, err)

	plaintext := []byte("opaque-reference")
	sealed, err := s.Seal(plaintext)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, sealed)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)
}

func TestSealer_RandomNonce(t *testing.T) {
	t.Parallel()

	s, err := cryptox.NewSealer([]byte("nonce-secret"))
	require.NoError(t, err)

	a, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b, "each seal should use a fresh nonce")
}

func TestSealer_Rejects(t *testing.T) {
	t.Parallel()

	s, err := cryptox.NewSealer([]byte("reject-secret"))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("payload"))
	require.NoError(t, err)

	t.Run("tampered", func(t *testing.T) {
		tampered := append([]byte(nil), sealed...)
		tampered[len(tampered)-1] ^= 0xFF
		_, err := s.Open(tampered)
		require.ErrorIs(t, err, cryptox.ErrOpen)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := s.Open([]byte("short"))
		require.ErrorIs(t, err, cryptox.ErrOpen)
	})

	t.Run("different key", func(t *testing.T) {
		other, err := cryptox.NewSealer([]byte("another-secret"))
		require.NoError(t, err)
		_, err = other.Open(sealed)
		require.ErrorIs(t, err, cryptox.ErrOpen)
	})
}

func TestNewSealer_EmptyKey(t *testing.T) {
	t.Parallel()

	_, err := cryptox.NewSealer(nil)
	require.Error(t, err)
}

func TestLoadKeyMaterial(t *testing.T) {
	t.Run("file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(path, []byte("from-file"), 0600))
		t.Setenv("TEST_SEALER_KEY", "from-env")

		key, ephemeral, err := cryptox.LoadKeyMaterial(path, "TEST_SEALER_KEY")
		require.NoError(t, err)
		require.False(t, ephemeral)
		require.Equal(t, []byte("from-file"), key)
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("TEST_SEALER_KEY", "from-env")

		key, ephemeral, err := cryptox.LoadKeyMaterial("", "TEST_SEALER_KEY")
		require.NoError(t, err)
		require.False(t, ephemeral)
		require.Equal(t, []byte("from-env"), key)
	})

	t.Run("ephemeral", func(t *testing.T) {
		t.Setenv("TEST_SEALER_KEY", "")

		key, ephemeral, err := cryptox.LoadKeyMaterial("", "TEST_SEALER_KEY")
		require.NoError(t, err)
		require.True(t, ephemeral)
		require.Len(t, key, 32)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := cryptox.LoadKeyMaterial(filepath.Join(t.TempDir(), "nope"), "TEST_SEALER_KEY")
		require.Error(t, err)
	})
}
