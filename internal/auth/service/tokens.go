package service

import (
	"context"
	"errors"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
)

// ErrEmailNotVerified blocks token listing for unverified accounts.
var ErrEmailNotVerified = errors.New("email_not_verified")

// ListIssuedTokens returns the live access tokens held by userID across all
// clients, newest first.
func (s *TokenService) ListIssuedTokens(ctx context.Context, userID string, emailVerified bool) ([]domain.IssuedToken, error) {
	if userID == "" {
		return nil, ErrLoginRequired
	}
	if !emailVerified {
		return nil, ErrEmailNotVerified
	}

	return s.Store.AccessTokens().ListAccessTokens(ctx, store.AccessTokenFilter{
		UserID: userID,
		LiveAt: s.now(),
	})
}
