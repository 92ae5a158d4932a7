package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type staticAuthenticator map[string]httpx.Identity

func (s staticAuthenticator) AuthenticateToken(_ context.Context, raw string) (httpx.Identity, error) {
	id, ok := s[raw]
	if !ok {
		return httpx.Identity{}, errors.New("unknown token")
	}
	return id, nil
}

func TestChain_Order(t *testing.T) {
	var trail []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		trail = append(trail, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, trail)
}

func TestAuthnAndScopes(t *testing.T) {
	auth := staticAuthenticator{
		"good":    {UserID: "u1", ClientID: "c1", Scopes: []string{"rw:profile", "r:backpack"}},
		"limited": {UserID: "u2", Scopes: []string{"r:backpack"}},
	}

	var seen httpx.Identity
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	h := httpx.Chain(final, httpx.AuthnMiddleware(auth), httpx.RequireAnyScope("rw:profile"))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"insufficient scope", "Bearer limited", http.StatusForbidden},
		{"ok", "Bearer good", http.StatusNoContent},
		{"lowercase scheme", "bearer good", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			switch tt.want {
			case http.StatusUnauthorized:
				require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), `Bearer error="invalid_token"`))
			case http.StatusForbidden:
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "insufficient_scope")
			}
		})
	}

	require.Equal(t, "u1", seen.UserID)
	require.Equal(t, "c1", seen.ClientID)
}

func TestRequireAllScopes(t *testing.T) {
	h := httpx.RequireAllScopes("a", "b")(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(httpx.ContextWithIdentity(req.Context(), httpx.Identity{Scopes: []string{"a"}})))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(httpx.ContextWithIdentity(req.Context(), httpx.Identity{Scopes: []string{"b", "a"}})))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestContentTypeHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	require.True(t, httpx.IsJSON(req))
	require.False(t, httpx.IsForm(req))

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.True(t, httpx.IsForm(req))

	require.Nil(t, httpx.ParseSpaceDelimitedFields("   "))
	require.Equal(t, []string{"a", "b"}, httpx.ParseSpaceDelimitedFields(" a  b "))
}
