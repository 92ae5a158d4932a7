package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrOpen is returned when a sealed payload cannot be authenticated.
var ErrOpen = errors.New("cryptox: unable to open sealed payload")

// Sealer performs AES-256-GCM authenticated encryption with a fixed key.
// Output layout: [nonce][ciphertext][tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte key from keyMaterial with SHA-256 and
// returns a Sealer bound to it. keyMaterial must not be empty.
func NewSealer(keyMaterial []byte) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("cryptox: empty key material")
	}

	key := sha256.Sum256(keyMaterial)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: gcm}, nil
}

// Seal encrypts and authenticates plaintext under a random nonce.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. Any truncated or tampered input yields ErrOpen.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize+s.aead.Overhead() {
		return nil, ErrOpen
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrOpen
	}
	return plaintext, nil
}

// LoadKeyMaterial resolves secret key material in order of preference:
//  1. the contents of path, when path is set
//  2. the value of the envVar environment variable
//  3. 32 random bytes (ephemeral; values sealed with it do not survive a restart)
//
// The returned bool reports whether the key is ephemeral.
func LoadKeyMaterial(path, envVar string) ([]byte, bool, error) {
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - operator supplied path
		if err != nil {
			return nil, false, fmt.Errorf("failed to read key file: %w", err)
		}
		return data, false, nil
	}

	if v := os.Getenv(envVar); v != "" {
		return []byte(v), false, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, false, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	return buf, true, nil
}
