package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// TokenSize256 is the entropy, in bytes before encoding, of bearer tokens,
// authorization codes, client secrets and PKCE verifiers (43 chars).
const TokenSize256 = 32

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewBearer returns a fresh opaque bearer value together with its
// fingerprint. The value goes to the caller once; only the fingerprint is
// persisted.
func NewBearer() (token, fingerprint string, err error) {
	token, err = GenerateToken(TokenSize256)
	if err != nil {
		return "", "", err
	}
	return token, FingerprintToken(token), nil
}

// FingerprintToken is the storage form of a bearer value: unpadded
// base64url SHA-256 (43 chars). Access tokens, refresh tokens and
// authorization codes are looked up by fingerprint only.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
