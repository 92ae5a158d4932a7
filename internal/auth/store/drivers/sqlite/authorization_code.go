package sqlite

import (
	"context"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/gen"
)

type authorizationCodesRepo struct {
	q *gen.Queries
}

func (r *authorizationCodesRepo) CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error {
	err := r.q.CreateAuthorizationCode(ctx, gen.CreateAuthorizationCodeParams{
		ID:                  code.ID,
		CodeHash:            code.CodeHash,
		UserID:              code.UserID,
		ClientID:            code.ClientID,
		RedirectUri:         code.RedirectURI,
		Scopes:              joinFields(code.Scopes),
		CodeChallenge:       code.CodeChallenge,
		CodeChallengeMethod: code.CodeChallengeMethod,
		ExpiresAt:           utc(code.ExpiresAt),
		CreatedAt:           utc(code.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *authorizationCodesRepo) GetAuthorizationCodeByHash(ctx context.Context, hash string) (domain.AuthorizationCode, error) {
	row, err := r.q.GetAuthorizationCodeByHash(ctx, hash)
	if err != nil {
		return domain.AuthorizationCode{}, mapNotFound(err)
	}
	return mapAuthorizationCode(row), nil
}

func (r *authorizationCodesRepo) ConsumeAuthorizationCode(ctx context.Context, id string, usedAt time.Time) error {
	return expectRows(r.q.ConsumeAuthorizationCode(ctx, gen.ConsumeAuthorizationCodeParams{
		UsedAt: utc(usedAt),
		ID:     id,
	}))
}

func (r *authorizationCodesRepo) DeleteExpiredAuthorizationCodes(ctx context.Context, now time.Time) error {
	return r.q.DeleteExpiredAuthorizationCodes(ctx, utc(now))
}
