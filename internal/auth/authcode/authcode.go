// Package authcode encodes short-lived, self-contained exchange codes. A code
// is an HS256 JWT naming an opaque reference, sealed with AES-256-GCM and
// base64url encoded. Nothing is stored; a code is valid until it expires.
package authcode

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/jwtx"
	"golang.org/x/crypto/hkdf"
)

const purpose = "authcode"

var (
	// ErrMalformed covers bad encoding, failed decryption and bad signatures.
	ErrMalformed = errors.New("authcode: malformed code")
	ErrExpired   = errors.New("authcode: expired code")
)

type Codec struct {
	signer   jwtx.Signer
	verifier jwtx.Verifier
	sealer   *cryptox.Sealer
	now      func() time.Time
}

// New derives independent signing and sealing keys from secret.
func New(secret []byte) (*Codec, error) {
	return NewWithClock(secret, time.Now)
}

// NewWithClock is New with an injectable clock.
func NewWithClock(secret []byte, now func() time.Time) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("authcode: empty secret")
	}

	sigKey, err := deriveKey(secret, "badgr authcode signing")
	if err != nil {
		return nil, err
	}
	sealKey, err := deriveKey(secret, "badgr authcode sealing")
	if err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerHS256(sigKey)
	if err != nil {
		return nil, err
	}
	sealer, err := cryptox.NewSealer(sealKey)
	if err != nil {
		return nil, err
	}

	return &Codec{
		signer:   signer,
		verifier: jwtx.NewVerifierHS256(sigKey, jwtx.VerifyOptions{Purpose: purpose, Now: now}),
		sealer:   sealer,
		now:      now,
	}, nil
}

func deriveKey(secret []byte, info string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("authcode: derive key: %w", err)
	}
	return key, nil
}

// Encode returns a code for reference valid for ttl. A ttl of zero or less
// yields a code that is already expired.
func (c *Codec) Encode(reference string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		// exp is truncated to whole seconds; step back a full one.
		ttl = -time.Second
	}

	signed, err := c.signer.Sign(jwtx.NewClaims(reference, purpose, "", ttl, c.now()))
	if err != nil {
		return "", fmt.Errorf("authcode: sign: %w", err)
	}

	sealed, err := c.sealer.Seal([]byte(signed))
	if err != nil {
		return "", fmt.Errorf("authcode: seal: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode returns the reference carried by code.
func (c *Codec) Decode(code string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return "", ErrMalformed
	}

	signed, err := c.sealer.Open(sealed)
	if err != nil {
		return "", ErrMalformed
	}

	claims, err := c.verifier.Verify(string(signed))
	switch {
	case err == nil:
	case errors.Is(err, jwtx.ErrExpired):
		return "", ErrExpired
	default:
		return "", ErrMalformed
	}

	if claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
