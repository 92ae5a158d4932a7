package domain_test

import (
	"testing"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestScopeAllowed(t *testing.T) {
	allowed := []string{"r:profile", domain.ScopeIssuerAny}

	tests := []struct {
		scope string
		want  bool
	}{
		{"r:profile", true},
		{"rw:profile", false},
		{"rw:issuer:abc123", true},
		{"rw:issuer:", false},
		{"rw:issuer", false},
	}
	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			require.Equal(t, tt.want, domain.ScopeAllowed(allowed, tt.scope))
		})
	}

	require.False(t, domain.ScopeAllowed([]string{"r:profile"}, "rw:issuer:abc"))
}

func TestScopesAllowedAndCover(t *testing.T) {
	require.True(t, domain.ScopesAllowed([]string{"a", "b"}, nil))
	require.True(t, domain.ScopesAllowed([]string{"a", "b"}, []string{"b"}))
	require.False(t, domain.ScopesAllowed([]string{"a"}, []string{"a", "c"}))

	require.True(t, domain.ScopesCover([]string{"a", "b"}, []string{"b", "a"}))
	require.False(t, domain.ScopesCover([]string{"a"}, []string{"a", "b"}))
}

func TestNormalizeScopes(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, domain.NormalizeScopes([]string{" a", "", "b", "a"}))
}

func TestNormalizeFields_KeepsOrder(t *testing.T) {
	got := domain.NormalizeFields([]string{
		"https://b.example.com/cb",
		" https://a.example.com/cb ",
		"https://b.example.com/cb",
		"",
	})
	require.Equal(t, []string{"https://b.example.com/cb", "https://a.example.com/cb"}, got)
}

func TestClientHelpers(t *testing.T) {
	c := &domain.Client{
		GrantTypes:   []string{domain.GrantAuthorizationCode},
		RedirectURIs: []string{"https://app.example.com/cb"},
	}
	require.True(t, c.IsPublic())
	require.True(t, c.AllowsGrant(domain.GrantAuthorizationCode))
	require.False(t, c.AllowsGrant(domain.GrantRefreshToken))
	require.True(t, c.HasRedirectURI("https://app.example.com/cb"))
	require.False(t, c.HasRedirectURI("https://app.example.com/cb/"))
}
