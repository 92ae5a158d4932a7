package app

import (
	"fmt"
	"log/slog"

	"github.com/snehalbaghel/badgr-server/internal/auth/authcode"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
)

// InitAuthcodeCodec resolves the key that seals /o/authcode codes and builds
// the codec.
//
// Key sources, first match wins:
//   - AUTH_AUTHCODE_SECRET
//   - the file named by AUTH_MASTER_KEY_FILE
//   - AUTH_MASTER_KEY
//   - 32 random bytes generated on startup
//
// With an ephemeral key every outstanding authcode becomes invalid when the
// service restarts.
func InitAuthcodeCodec(cfg Config, logger *slog.Logger) (*authcode.Codec, error) {
	var (
		secret    []byte
		ephemeral bool
		err       error
	)

	if cfg.AuthcodeSecret != "" {
		secret = []byte(cfg.AuthcodeSecret)
	} else {
		secret, ephemeral, err = cryptox.LoadKeyMaterial(cfg.MasterKeyFile, "AUTH_MASTER_KEY")
		if err != nil {
			return nil, fmt.Errorf("failed to load authcode secret: %w", err)
		}
	}

	codec, err := authcode.New(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authcode codec: %w", err)
	}

	if ephemeral {
		logger.Warn("authcode secret is ephemeral, outstanding codes will not survive a restart")
	} else {
		logger.Info("authcode secret loaded")
	}
	return codec, nil
}
