package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Argon2id parameters.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile string
)

// SetPepperPath sets where the password pepper is persisted. The pepper is
// (re)loaded lazily on the next hash or verify.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperFile = file
	pepper = ""
}

// getPepper returns the pepper, creating the pepper file on first use.
func getPepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}
	if pepperFile == "" {
		return "", errors.New("cryptox: pepper path not configured")
	}

	p, err := loadOrGeneratePepper(filepath.Clean(pepperFile))
	if err != nil {
		return "", err
	}
	pepper = p
	return pepper, nil
}

func loadOrGeneratePepper(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("failed to create pepper directory: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - operator supplied path
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read pepper: %w", err)
	}

	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate pepper: %w", err)
	}
	p := base64.RawURLEncoding.EncodeToString(buf)
	if err := os.WriteFile(path, []byte(p), 0600); err != nil {
		return "", fmt.Errorf("failed to write pepper: %w", err)
	}
	return p, nil
}
