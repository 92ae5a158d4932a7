package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// RequireAnyScope the caller must hold at least one of the provided scopes.
func RequireAnyScope(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := scopesFromCtx(r.Context())
			for _, s := range required {
				if slices.Contains(have, s) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeBearerScopeError(w, required...)
		})
	}
}

// RequireAllScopes the caller must hold every scope listed.
func RequireAllScopes(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := scopesFromCtx(r.Context())
			for _, s := range required {
				if !slices.Contains(have, s) {
					writeBearerScopeError(w, required...)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750 insufficient_scope response.
func writeBearerScopeError(w http.ResponseWriter, required ...string) {
	scope := strings.Join(required, " ")
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+scope+`"`)
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "insufficient_scope",
		"error_description": "token lacks required scope: " + scope,
	})
}
