package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite"
	"github.com/snehalbaghel/badgr-server/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()
	now := time.Now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedClient(t *testing.T, s store.Store, redirectURIs ...string) domain.Client {
	t.Helper()
	now := time.Now()
	c := domain.Client{
		ID:            idx.New().String(),
		Name:          "Example",
		SecretHash:    "secret-hash",
		GrantTypes:    []string{domain.GrantAuthorizationCode, domain.GrantRefreshToken},
		ResponseTypes: []string{domain.ResponseTypeCode},
		RedirectURIs:  redirectURIs,
		Scopes:        domain.BadgeConnectScopes(),
		ClientURI:     "https://app.example.com",
		PolicyURI:     "https://app.example.com/privacy",
		TOSURI:        "https://app.example.com/terms",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, s.Clients().CreateClient(context.Background(), c))
	return c
}

func TestMigrations(t *testing.T) {
	s := newTestStore(t)

	version, dirty, err := s.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)

	// Re-applying is a no-op.
	require.NoError(t, s.ApplyMigrations())

	require.NoError(t, s.RollbackMigrations(1))
	version, _, err = s.MigrationVersion()
	require.NoError(t, err)
	require.Equal(t, uint(0), version)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, "Alice@Example.com")

	got, err := s.Users().GetUserByEmail(ctx, "alice@example.COM")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "alice@example.com", got.Email)
	require.False(t, got.EmailVerified)

	err = s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Email: "alice@example.com", PasswordHash: "x"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.NoError(t, s.Users().SetEmailVerified(ctx, u.ID, true))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.EmailVerified)

	require.ErrorIs(t, s.Users().SetEmailVerified(ctx, "missing", true), store.ErrNotFound)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestClients(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c := seedClient(t, s, "https://app.example.com/cb", "https://app.example.com/alt")

	got, err := s.Clients().GetClientByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"https://app.example.com/cb", "https://app.example.com/alt"}, got.RedirectURIs)
	require.Equal(t, c.GrantTypes, got.GrantTypes)
	require.Equal(t, c.Scopes, got.Scopes)
	require.Equal(t, "https://app.example.com/privacy", got.PolicyURI)
	require.False(t, got.IsPublic())

	owner, err := s.Clients().RedirectURIOwner(ctx, "https://app.example.com/alt")
	require.NoError(t, err)
	require.Equal(t, c.ID, owner)

	exists, err := s.Clients().ClientURIExists(ctx, "https://app.example.com")
	require.NoError(t, err)
	require.True(t, exists)

	t.Run("duplicate redirect uri rolls back", func(t *testing.T) {
		dup := domain.Client{
			ID:           idx.New().String(),
			Name:         "Other",
			RedirectURIs: []string{"https://other.example.com/cb", "https://app.example.com/cb"},
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Clients().CreateClient(ctx, dup)
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		_, err = s.Clients().GetClientByID(ctx, dup.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Clients().RedirectURIOwner(ctx, "https://other.example.com/cb")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	clients, err := s.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	require.NoError(t, s.Clients().DeleteClient(ctx, c.ID))
	_, err = s.Clients().RedirectURIOwner(ctx, "https://app.example.com/cb")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuthorizationCodeConsumedOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, "bob@example.com")
	c := seedClient(t, s, "https://app.example.com/cb")

	code := domain.AuthorizationCode{
		ID:                  idx.New().String(),
		UserID:              u.ID,
		ClientID:            c.ID,
		CodeHash:            "code-hash",
		RedirectURI:         "https://app.example.com/cb",
		Scopes:              []string{domain.ScopeProfileReadonly},
		CodeChallenge:       "challenge",
		CodeChallengeMethod: "S256",
		ExpiresAt:           time.Now().Add(time.Minute),
		CreatedAt:           time.Now(),
	}
	require.NoError(t, s.AuthorizationCodes().CreateAuthorizationCode(ctx, code))

	got, err := s.AuthorizationCodes().GetAuthorizationCodeByHash(ctx, "code-hash")
	require.NoError(t, err)
	require.Nil(t, got.UsedAt)
	require.Equal(t, code.Scopes, got.Scopes)

	require.NoError(t, s.AuthorizationCodes().ConsumeAuthorizationCode(ctx, code.ID, time.Now()))
	require.ErrorIs(t, s.AuthorizationCodes().ConsumeAuthorizationCode(ctx, code.ID, time.Now()), store.ErrNotFound)

	got, err = s.AuthorizationCodes().GetAuthorizationCodeByHash(ctx, "code-hash")
	require.NoError(t, err)
	require.NotNil(t, got.UsedAt)

	require.NoError(t, s.AuthorizationCodes().DeleteExpiredAuthorizationCodes(ctx, time.Now().Add(time.Hour)))
	_, err = s.AuthorizationCodes().GetAuthorizationCodeByHash(ctx, "code-hash")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccessAndRefreshTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, "carol@example.com")
	c := seedClient(t, s, "https://app.example.com/cb")
	now := time.Now()

	live := domain.AccessToken{
		ID: idx.New().String(), UserID: u.ID, ClientID: c.ID, TokenHash: "live",
		Scopes: []string{"rw:profile"}, ExpiresAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now,
	}
	expired := domain.AccessToken{
		ID: idx.New().String(), UserID: u.ID, ClientID: c.ID, TokenHash: "expired",
		Scopes: []string{"rw:profile"}, ExpiresAt: now.Add(-time.Hour), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.AccessTokens().CreateAccessToken(ctx, live))
	require.NoError(t, s.AccessTokens().CreateAccessToken(ctx, expired))

	t.Run("list filters by liveness and joins client", func(t *testing.T) {
		all, err := s.AccessTokens().ListAccessTokens(ctx, store.AccessTokenFilter{UserID: u.ID})
		require.NoError(t, err)
		require.Len(t, all, 2)

		current, err := s.AccessTokens().ListAccessTokens(ctx, store.AccessTokenFilter{UserID: u.ID, LiveAt: now})
		require.NoError(t, err)
		require.Len(t, current, 1)
		require.Equal(t, live.ID, current[0].Token.ID)
		require.Equal(t, "Example", current[0].Client.Name)
		require.Equal(t, "https://app.example.com/terms", current[0].Client.TOSURI)

		none, err := s.AccessTokens().ListAccessTokens(ctx, store.AccessTokenFilter{UserID: "someone-else"})
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("refresh revoke is conditional", func(t *testing.T) {
		rt := domain.RefreshToken{
			ID: idx.New().String(), AccessTokenID: live.ID, UserID: u.ID, ClientID: c.ID, TokenHash: "refresh",
			Scopes: live.Scopes, ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, rt))

		require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, rt.ID))
		require.ErrorIs(t, s.RefreshTokens().RevokeRefreshToken(ctx, rt.ID), store.ErrNotFound)

		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "refresh")
		require.NoError(t, err)
		require.True(t, got.Revoked)
		require.Equal(t, live.ID, got.AccessTokenID)

		// Deleting the access token unlinks the refresh token.
		require.NoError(t, s.AccessTokens().DeleteAccessToken(ctx, live.ID))
		got, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "refresh")
		require.NoError(t, err)
		require.Empty(t, got.AccessTokenID)
	})

	t.Run("housekeeping removes expired rows", func(t *testing.T) {
		require.NoError(t, s.AccessTokens().DeleteExpiredAccessTokens(ctx, now))
		_, err := s.AccessTokens().GetAccessTokenByID(ctx, expired.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, s.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now))
		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "refresh")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestClientCredentialsTokenReplacedInPlace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c := seedClient(t, s, "https://app.example.com/cb")
	now := time.Now()
	scopes := []string{"rw:issuer:abc"}

	tok := domain.AccessToken{
		ID: idx.New().String(), ClientID: c.ID, TokenHash: "first",
		Scopes: scopes, ExpiresAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.AccessTokens().CreateAccessToken(ctx, tok))

	// A second userless row for the same (client, scopes) is rejected.
	dup := tok
	dup.ID = idx.New().String()
	dup.TokenHash = "dup"
	require.ErrorIs(t, s.AccessTokens().CreateAccessToken(ctx, dup), store.ErrAlreadyExists)

	found, err := s.AccessTokens().FindClientCredentialsToken(ctx, c.ID, scopes)
	require.NoError(t, err)
	require.Equal(t, tok.ID, found.ID)
	require.Empty(t, found.UserID)

	replacedAt := now.Add(90 * time.Minute)
	require.NoError(t, s.AccessTokens().ReplaceAccessTokenValue(ctx, tok.ID, "second", now.Add(2*time.Hour), replacedAt))

	_, err = s.AccessTokens().GetAccessTokenByHash(ctx, "first")
	require.ErrorIs(t, err, store.ErrNotFound)
	got, err := s.AccessTokens().GetAccessTokenByHash(ctx, "second")
	require.NoError(t, err)
	require.Equal(t, tok.ID, got.ID)
	require.WithinDuration(t, replacedAt, got.UpdatedAt, time.Second)
	require.WithinDuration(t, now, got.CreatedAt, time.Second)

	_, err = s.AccessTokens().FindClientCredentialsToken(ctx, c.ID, []string{"other"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	id := idx.New().String()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{ID: id, Email: "dave@example.com", PasswordHash: "x"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByID(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxNestedUsesSavepoint(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	kept := idx.New().String()
	dropped := idx.New().String()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{ID: kept, Email: "erin@example.com", PasswordHash: "x"}); err != nil {
			return err
		}
		inner := tx.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, domain.User{ID: dropped, Email: "frank@example.com", PasswordHash: "x"}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, inner, boom)

		_, err := tx.Tx(ctx)
		require.ErrorIs(t, err, sqlite.ErrNestedTx)
		return nil
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByID(ctx, kept)
	require.NoError(t, err)
	_, err = s.Users().GetUserByID(ctx, dropped)
	require.ErrorIs(t, err, store.ErrNotFound)
}
