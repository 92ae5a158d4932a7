package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/gen"
)

type accessTokensRepo struct {
	q  *gen.Queries
	db gen.DBTX
}

func (r *accessTokensRepo) CreateAccessToken(ctx context.Context, t domain.AccessToken) error {
	err := r.q.CreateAccessToken(ctx, gen.CreateAccessTokenParams{
		ID:        t.ID,
		TokenHash: t.TokenHash,
		UserID:    mapStringNull(t.UserID),
		ClientID:  t.ClientID,
		Scopes:    joinFields(t.Scopes),
		ExpiresAt: utc(t.ExpiresAt),
		CreatedAt: utc(t.CreatedAt),
		UpdatedAt: utc(t.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *accessTokensRepo) GetAccessTokenByID(ctx context.Context, id string) (domain.AccessToken, error) {
	row, err := r.q.GetAccessTokenByID(ctx, id)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return mapAccessToken(row), nil
}

func (r *accessTokensRepo) GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error) {
	row, err := r.q.GetAccessTokenByHash(ctx, hash)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return mapAccessToken(row), nil
}

func (r *accessTokensRepo) FindClientCredentialsToken(ctx context.Context, clientID string, scopes []string) (domain.AccessToken, error) {
	row, err := r.q.GetClientCredentialsToken(ctx, gen.GetClientCredentialsTokenParams{
		ClientID: clientID,
		Scopes:   joinFields(scopes),
	})
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return mapAccessToken(row), nil
}

func (r *accessTokensRepo) ReplaceAccessTokenValue(ctx context.Context, id, newHash string, expiresAt, updatedAt time.Time) error {
	n, err := r.q.ReplaceAccessTokenValue(ctx, gen.ReplaceAccessTokenValueParams{
		TokenHash: newHash,
		ExpiresAt: utc(expiresAt),
		UpdatedAt: utc(updatedAt),
		ID:        id,
	})
	return expectRows(n, mapConstraint(err))
}

func (r *accessTokensRepo) DeleteAccessToken(ctx context.Context, id string) error {
	return expectRows(r.q.DeleteAccessToken(ctx, id))
}

func (r *accessTokensRepo) DeleteExpiredAccessTokens(ctx context.Context, now time.Time) error {
	return r.q.DeleteExpiredAccessTokens(ctx, utc(now))
}

// ListAccessTokens builds its WHERE clause from the filter, so it is the one
// query not generated from queries/.
func (r *accessTokensRepo) ListAccessTokens(ctx context.Context, filter store.AccessTokenFilter) ([]domain.IssuedToken, error) {
	qb := sqlbuilder.SQLite.NewSelectBuilder()
	qb.Select(
		"a.id", "a.token_hash", "a.user_id", "a.client_id", "a.scopes", "a.expires_at", "a.created_at", "a.updated_at",
		"c.name", "c.client_uri", "c.logo_uri", "c.tos_uri", "c.policy_uri",
	).
		From("access_tokens a").
		JoinWithOption(sqlbuilder.InnerJoin, "clients c", "c.id = a.client_id")

	if filter.UserID != "" {
		qb.Where(qb.Equal("a.user_id", filter.UserID))
	}
	if filter.ClientID != "" {
		qb.Where(qb.Equal("a.client_id", filter.ClientID))
	}
	if !filter.LiveAt.IsZero() {
		qb.Where(qb.GreaterThan("a.expires_at", utc(filter.LiveAt)))
	}
	qb.OrderBy("a.created_at").Desc()

	query, args := qb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.IssuedToken
	for rows.Next() {
		var (
			t      gen.AccessToken
			c      gen.Client
			userID sql.NullString
		)
		if err := rows.Scan(
			&t.ID, &t.TokenHash, &userID, &t.ClientID, &t.Scopes, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt,
			&c.Name, &c.ClientUri, &c.LogoUri, &c.TosUri, &c.PolicyUri,
		); err != nil {
			return nil, err
		}
		t.UserID = userID
		c.ID = t.ClientID
		out = append(out, domain.IssuedToken{
			Token:  mapAccessToken(t),
			Client: mapClient(c, nil),
		})
	}
	return out, rows.Err()
}
