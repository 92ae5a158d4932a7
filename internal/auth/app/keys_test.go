package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/snehalbaghel/badgr-server/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestInitAuthcodeCodec_SharedSecret(t *testing.T) {
	cfg := Config{AuthcodeSecret: "correct horse battery staple"}

	a, err := InitAuthcodeCodec(cfg, slogx.Discard())
	require.NoError(t, err)
	b, err := InitAuthcodeCodec(cfg, slogx.Discard())
	require.NoError(t, err)

	code, err := a.Encode("token-ref", time.Minute)
	require.NoError(t, err)
	ref, err := b.Decode(code)
	require.NoError(t, err)
	require.Equal(t, "token-ref", ref)
}

func TestInitAuthcodeCodec_MasterKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, os.WriteFile(path, []byte("file secret"), 0o600))

	fromFile, err := InitAuthcodeCodec(Config{MasterKeyFile: path}, slogx.Discard())
	require.NoError(t, err)
	fromEnv, err := InitAuthcodeCodec(Config{AuthcodeSecret: "file secret"}, slogx.Discard())
	require.NoError(t, err)

	code, err := fromFile.Encode("token-ref", time.Minute)
	require.NoError(t, err)
	_, err = fromEnv.Decode(code)
	require.NoError(t, err)
}

func TestInitAuthcodeCodec_Ephemeral(t *testing.T) {
	t.Setenv("AUTH_MASTER_KEY", "")

	a, err := InitAuthcodeCodec(Config{}, slogx.Discard())
	require.NoError(t, err)
	b, err := InitAuthcodeCodec(Config{}, slogx.Discard())
	require.NoError(t, err)

	code, err := a.Encode("token-ref", time.Minute)
	require.NoError(t, err)
	_, err = b.Decode(code)
	require.Error(t, err)
}
