package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// TokenAuthenticator resolves a raw bearer value into an Identity. It must
// fail for unknown and expired tokens alike.
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, raw string) (Identity, error)
}

// AuthnMiddleware rejects requests without a valid bearer token and stores
// the resolved Identity on the request context. The request logger is tagged
// with the user and client.
func AuthnMiddleware(a TokenAuthenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := ExtractBearerToken(r)
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			id, err := a.AuthenticateToken(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("bearer authentication failed", "err", err)
				writeBearerError(w, "invalid or expired token")
				return
			}

			ctx = slogx.With(ContextWithIdentity(ctx, id), "user_id", id.UserID, "client_id", id.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearerToken returns the token from an "Authorization: Bearer"
// header, or "" when there is none.
func ExtractBearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}

// RFC 6750 error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
