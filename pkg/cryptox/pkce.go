package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// PKCE challenge methods (RFC 7636).
const (
	PKCEMethodS256  = "S256"
	PKCEMethodPlain = "plain"
)

// PKCEChallenge derives the code_challenge for verifier under method.
// Unknown methods return an empty string.
func PKCEChallenge(verifier, method string) string {
	switch method {
	case PKCEMethodS256:
		sum := sha256.Sum256([]byte(verifier))
		return base64.RawURLEncoding.EncodeToString(sum[:])
	case PKCEMethodPlain:
		return verifier
	default:
		return ""
	}
}

// VerifyPKCE reports whether verifier matches challenge under method.
// The comparison is constant time.
func VerifyPKCE(verifier, challenge, method string) bool {
	if verifier == "" || challenge == "" {
		return false
	}
	computed := PKCEChallenge(verifier, method)
	if computed == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(challenge)) == 1
}
