package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyScopes   ctxKey = "scopes"
	CtxKeyIdentity ctxKey = "identity"
)

// Identity is what an authenticated bearer token resolves to.
type Identity struct {
	UserID        string // empty for client_credentials tokens
	ClientID      string
	TokenID       string
	Scopes        []string
	EmailVerified bool
}

// ContextWithIdentity stores id and its convenience projections on ctx.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, id.UserID)
	ctx = context.WithValue(ctx, CtxKeyScopes, id.Scopes)
	return context.WithValue(ctx, CtxKeyIdentity, id)
}

// IdentityFromContext returns the identity placed by AuthnMiddleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(CtxKeyIdentity).(Identity)
	return id, ok
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
