package sqlite

import (
	"context"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/gen"
)

type refreshTokensRepo struct {
	q *gen.Queries
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	err := r.q.CreateRefreshToken(ctx, gen.CreateRefreshTokenParams{
		ID:            t.ID,
		TokenHash:     t.TokenHash,
		AccessTokenID: mapStringNull(t.AccessTokenID),
		UserID:        t.UserID,
		ClientID:      t.ClientID,
		Scopes:        joinFields(t.Scopes),
		ExpiresAt:     utc(t.ExpiresAt),
		CreatedAt:     utc(t.CreatedAt),
		UpdatedAt:     utc(t.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(
	ctx context.Context,
	hash string,
) (domain.RefreshToken, error) {
	row, err := r.q.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return mapRefreshToken(row), nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	return expectRows(r.q.RevokeRefreshToken(ctx, gen.RevokeRefreshTokenParams{
		UpdatedAt: utc(time.Now()),
		ID:        id,
	}))
}

func (r *refreshTokensRepo) RevokeAllUserClientRefreshTokens(
	ctx context.Context,
	userID, clientID string,
) error {
	return r.q.RevokeAllUserClientRefreshTokens(ctx, gen.RevokeAllUserClientRefreshTokensParams{
		UpdatedAt: utc(time.Now()),
		UserID:    userID,
		ClientID:  clientID,
	})
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	return r.q.DeleteExpiredRefreshTokens(ctx, utc(now))
}
