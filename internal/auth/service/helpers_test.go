package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/idx"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "correct horse battery staple"
	testRedirect = "https://app.example.com/callback"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-pepper")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// newFileStore opens a WAL database file the way the server does, so
// concurrent transactions run on separate pooled connections.
func newFileStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *sqlite.Store, email string, verified bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	now := time.Now().UTC()
	u := domain.User{
		ID:            idx.New().String(),
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: verified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

// seedClient stores c, filling the identity and timestamps. A non-empty
// secret makes the client confidential.
func seedClient(t *testing.T, s *sqlite.Store, c domain.Client, secret string) domain.Client {
	t.Helper()

	if c.ID == "" {
		c.ID = idx.New().String()
	}
	if c.Name == "" {
		c.Name = "Example"
	}
	if secret != "" {
		hash, err := cryptox.HashPassword(secret)
		require.NoError(t, err)
		c.SecretHash = hash
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	require.NoError(t, s.Clients().CreateClient(context.Background(), c))
	return c
}

// webClient is a confidential authorization_code client that also gets
// refresh tokens.
func webClient() domain.Client {
	return domain.Client{
		GrantTypes:        []string{domain.GrantAuthorizationCode, domain.GrantRefreshToken},
		ResponseTypes:     []string{domain.ResponseTypeCode},
		RedirectURIs:      []string{testRedirect},
		Scopes:            domain.BadgeConnectScopes(),
		ClientURI:         "https://app.example.com",
		PolicyURI:         "https://app.example.com/privacy",
		TOSURI:            "https://app.example.com/terms",
		IssueRefreshToken: true,
	}
}

func newTokenService(s *sqlite.Store, clock *testClock) *TokenService {
	return &TokenService{
		Store:      s,
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		Now:        clock.Now,
	}
}

func newAuthorizeService(s *sqlite.Store, clock *testClock) *AuthorizeService {
	return &AuthorizeService{Store: s, CodeTTL: 5 * time.Minute, Now: clock.Now}
}
