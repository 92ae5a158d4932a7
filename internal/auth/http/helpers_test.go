package http_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/audit"
	"github.com/snehalbaghel/badgr-server/internal/auth/authcode"
	"github.com/snehalbaghel/badgr-server/internal/auth/backoff"
	authhttp "github.com/snehalbaghel/badgr-server/internal/auth/http"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite"
	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "correct horse battery staple"
	testRedirect = "https://app.example.com/callback"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-pepper")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	// Handler tests share one client address.
	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
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

type testEnv struct {
	srv   *httptest.Server
	sdk   *authsdk.SDKClient
	store *sqlite.Store
	clock *testClock

	clients *service.ClientService
	users   *service.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := &testClock{t: time.Now().UTC().Truncate(time.Second)}

	codec, err := authcode.NewWithClock([]byte("http-test-authcode-secret"), clock.Now)
	require.NoError(t, err)

	guard := backoff.New(backoff.NewMemoryStore(), 2*time.Second, time.Hour)
	guard.Clock = clock.Now

	tokens := &service.TokenService{
		Store:      st,
		Backoff:    guard,
		Audit:      audit.LogPublisher{},
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		Now:        clock.Now,
	}

	router := authhttp.NewRouter("test", st, guard.Store, nil)
	router.TokenService = tokens
	router.AuthorizeService = &service.AuthorizeService{Store: st, CodeTTL: 5 * time.Minute, Now: clock.Now}
	router.RegistrationService = &service.RegistrationService{Store: st, Now: clock.Now}
	router.AuthcodeService = &service.AuthcodeService{Store: st, Codec: codec, TTL: time.Minute, Now: clock.Now}
	router.ManifestService = &service.ManifestService{Config: &service.ManifestConfig{
		Origin:        "https://api.badgr.test",
		DefaultDomain: "badgr.test",
		Apps: []service.ManifestApp{
			{Domain: "badgr.test", Name: "Badgr", Image: "https://badgr.test/logo.png"},
			{Domain: "eu.badgr.test", Name: "Badgr EU"},
		},
	}}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		srv:     srv,
		sdk:     authsdk.NewSDKClient(srv.URL),
		store:   st,
		clock:   clock,
		clients: &service.ClientService{Store: st},
		users:   &service.UserService{Store: st},
	}
}

func (e *testEnv) createUser(t *testing.T, email string, verified bool) string {
	t.Helper()

	u, err := e.users.CreateUser(context.Background(), email, testPassword, verified)
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) createClient(t *testing.T, spec service.ClientSpec) authsdk.ClientCredentials {
	t.Helper()

	id, secret, err := e.clients.CreateClient(context.Background(), spec)
	require.NoError(t, err)
	return authsdk.ClientCredentials{ID: id, Secret: secret}
}

// passwordToken signs email in through the password grant of the default
// public client, creating that client on first use.
func (e *testEnv) passwordToken(t *testing.T, email string, scopes ...string) *authsdk.TokenResponse {
	t.Helper()
	ctx := context.Background()

	if _, err := e.store.Clients().GetClientByID(ctx, service.DefaultClientID); err != nil {
		e.createClient(t, service.ClientSpec{
			ID:         service.DefaultClientID,
			Name:       "Badgr web",
			GrantTypes: []string{"password", "refresh_token"},
			Scopes:     []string{"rw:profile", "rw:backpack", "rw:issuer"},
		})
	}

	tok, err := e.sdk.PasswordGrant(ctx, authsdk.ClientCredentials{}, email, testPassword, scopes)
	require.NoError(t, err)
	return tok
}

// webClient is a confidential authorization code client.
func (e *testEnv) webClient(t *testing.T) authsdk.ClientCredentials {
	t.Helper()

	return e.createClient(t, service.ClientSpec{
		Name:         "Web app",
		Confidential: true,
		GrantTypes:   []string{"authorization_code", "refresh_token"},
		RedirectURIs: []string{testRedirect},
		Scopes:       []string{"rw:profile", "r:backpack"},
		ClientURI:    "https://app.example.com",
	})
}

func requireOAuthError(t *testing.T, err error, status int, code string) *authsdk.OAuth2Error {
	t.Helper()

	require.Error(t, err)
	var oerr *authsdk.OAuth2Error
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, status, oerr.StatusCode)
	require.Equal(t, code, oerr.Code)
	return oerr
}
