package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
origin: https://api.badgr.test/
default_domain: badgr.test
apps:
  - domain: badgr.test
    name: Badgr
    image: https://badgr.test/logo.png
    terms_of_service_url: https://badgr.test/terms
    privacy_policy_url: https://badgr.test/privacy
  - domain: eu.badgr.test
    name: Badgr EU
    authorization_url: https://eu.badgr.test/login/authorize
`

func loadTestManifest(t *testing.T) *ManifestService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0600))

	cfg, err := LoadManifest(path)
	require.NoError(t, err)
	return &ManifestService{Config: cfg}
}

func TestManifest(t *testing.T) {
	t.Parallel()
	svc := loadTestManifest(t)

	m, err := svc.Manifest("badgr.test")
	require.NoError(t, err)
	require.Equal(t, "https://api.badgr.test/bcv1/manifest/badgr.test", m.ID)
	require.Len(t, m.BadgeConnectAPI, 1)

	entry := m.BadgeConnectAPI[0]
	require.Equal(t, "Badgr", entry.Name)
	require.Equal(t, "https://api.badgr.test/bcv1", entry.APIBase)
	require.Equal(t, "v1p0", entry.Version)
	require.Equal(t, domain.BadgeConnectScopes(), entry.ScopesOffered)
	require.Equal(t, "https://api.badgr.test/o/register", entry.RegistrationURL)
	require.Equal(t, "https://api.badgr.test/o/token", entry.TokenURL)
	require.Equal(t, "https://badgr.test/auth/oauth2/authorize", entry.AuthorizationURL)

	eu, err := svc.Manifest("EU.badgr.test")
	require.NoError(t, err)
	require.Equal(t, "https://eu.badgr.test/login/authorize", eu.BadgeConnectAPI[0].AuthorizationURL)

	_, err = svc.Manifest("unknown.test")
	require.ErrorIs(t, err, ErrManifestNotFound)
}

func TestManifest_DomainForHost(t *testing.T) {
	t.Parallel()
	svc := loadTestManifest(t)

	d, err := svc.DomainForHost("eu.badgr.test:8443")
	require.NoError(t, err)
	require.Equal(t, "eu.badgr.test", d)

	d, err = svc.DomainForHost("api.badgr.test")
	require.NoError(t, err)
	require.Equal(t, "badgr.test", d)

	_, err = (&ManifestService{Config: &ManifestConfig{}}).DomainForHost("x")
	require.ErrorIs(t, err, ErrManifestNotFound)
}

func TestLoadManifest_RequiresOrigin(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apps: []\n"), 0600))

	_, err := LoadManifest(path)
	require.Error(t, err)
}
