package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/audit"
	"github.com/snehalbaghel/badgr-server/internal/auth/backoff"
	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/snehalbaghel/badgr-server/pkg/idx"
	"github.com/snehalbaghel/badgr-server/pkg/otelx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// DefaultClientID is used by the password grant when no client_id is sent.
const DefaultClientID = "public"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidClient      = errors.New("invalid_client")
	ErrUnauthorizedClient = errors.New("unauthorized_client")
	ErrInvalidScope       = errors.New("invalid_scope")
	ErrInvalidGrant       = errors.New("invalid_grant")
	ErrInvalidToken       = errors.New("invalid_token")
)

// LockedError is returned by the password grant while the backoff guard
// holds the account.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("too many failed login attempts, retry after %s", e.RetryAfter)
}

// RetryAfterSeconds rounds the remaining lockout up to whole seconds.
func (e *LockedError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	return max(secs, 1)
}

var noopMetrics = otelx.Noop().Metrics()

type TokenService struct {
	Store   store.Store
	Backoff *backoff.Guard
	Audit   audit.Publisher
	Metrics *otelx.Metrics

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// DefaultClientID backs password grants that omit client_id.
	DefaultClientID string

	Now func() time.Time
}

// PasswordRequest carries a password grant.
type PasswordRequest struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Scopes       []string

	// Address is the caller's IP, half of the backoff key.
	Address  string
	Endpoint string
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *TokenService) metrics() *otelx.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return noopMetrics
}

// authenticateClient loads clientID and checks the secret of confidential
// clients. Public clients are accepted without a secret.
func (s *TokenService) authenticateClient(ctx context.Context, clientID, clientSecret string) (domain.Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return domain.Client{}, ErrInvalidClient
	}

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrInvalidClient
		}
		return domain.Client{}, err
	}

	if !client.IsPublic() {
		if clientSecret == "" || cryptox.VerifyPassword(clientSecret, client.SecretHash) != nil {
			slogx.FromContext(ctx).Info("client authentication failed", slog.String("client_id", clientID))
			return domain.Client{}, ErrInvalidClient
		}
	}
	return client, nil
}

// resolveScopes validates requested against allowed. An empty request gets
// everything allowed.
func resolveScopes(allowed, requested []string) ([]string, error) {
	requested = domain.NormalizeScopes(requested)
	if len(requested) == 0 {
		return slices.Clone(allowed), nil
	}
	if !domain.ScopesAllowed(allowed, requested) {
		return nil, ErrInvalidScope
	}
	return requested, nil
}

// ExchangeAuthorizationCode implements the authorization_code grant.
//
// The code is consumed before PKCE is checked, so a wrong verifier burns the
// code just like a successful exchange would.
func (s *TokenService) ExchangeAuthorizationCode(
	ctx context.Context,
	clientID, clientSecret, code, redirectURI, codeVerifier string,
) (*domain.TokenPair, error) {
	now := s.now()
	l := slogx.FromContext(ctx)

	client, err := s.authenticateClient(ctx, clientID, clientSecret)
	if err != nil {
		return nil, err
	}
	if !client.AllowsGrant(domain.GrantAuthorizationCode) {
		return nil, ErrUnauthorizedClient
	}

	code = strings.TrimSpace(code)
	redirectURI = strings.TrimSpace(redirectURI)
	codeVerifier = strings.TrimSpace(codeVerifier)
	if code == "" || redirectURI == "" {
		return nil, ErrInvalidGrant
	}

	var (
		result     *domain.TokenPair
		pkceFailed bool
		method     string
	)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		authCode, err := tx.AuthorizationCodes().GetAuthorizationCodeByHash(ctx, cryptox.FingerprintToken(code))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidGrant
			}
			return err
		}

		if authCode.ClientID != client.ID || authCode.RedirectURI != redirectURI {
			return ErrInvalidGrant
		}
		if !authCode.Redeemable(now) {
			return ErrInvalidGrant
		}

		if err := tx.AuthorizationCodes().ConsumeAuthorizationCode(ctx, authCode.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidGrant
			}
			return err
		}

		method = authCode.CodeChallengeMethod
		if authCode.CodeChallenge != "" &&
			!cryptox.VerifyPKCE(codeVerifier, authCode.CodeChallenge, authCode.CodeChallengeMethod) {
			// Commit the consumption.
			pkceFailed = true
			return nil
		}

		if _, err := tx.Users().GetUserByID(ctx, authCode.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidGrant
			}
			return err
		}

		result, err = s.issue(ctx, tx, client, authCode.UserID, authCode.Scopes, client.IssueRefreshToken, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if pkceFailed {
		l.Info("authorization code PKCE verification failed", "client_id", client.ID, "method", method)
		s.metrics().RecordPKCEValidationFailed(ctx, method)
		return nil, ErrInvalidGrant
	}

	s.metrics().RecordCodeExchange(ctx, client.ID, method)
	s.metrics().RecordTokenIssued(ctx, client.ID, domain.GrantAuthorizationCode)
	return result, nil
}

// ExchangeRefreshToken rotates a refresh token. The old refresh token is
// revoked and its access token deleted in the same transaction that stores
// the new pair; of two concurrent callers only one wins.
func (s *TokenService) ExchangeRefreshToken(
	ctx context.Context,
	clientID, clientSecret, refreshOpaque string,
	requestedScopes []string,
) (*domain.TokenPair, error) {
	now := s.now()

	client, err := s.authenticateClient(ctx, clientID, clientSecret)
	if err != nil {
		return nil, err
	}
	if !client.AllowsGrant(domain.GrantRefreshToken) {
		return nil, ErrUnauthorizedClient
	}

	refreshOpaque = strings.TrimSpace(refreshOpaque)
	if refreshOpaque == "" {
		return nil, ErrInvalidGrant
	}

	var result *domain.TokenPair

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		rt, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(refreshOpaque))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidGrant
			}
			return err
		}
		if rt.Revoked || rt.ClientID != client.ID || !now.Before(rt.ExpiresAt) {
			return ErrInvalidGrant
		}

		scopes, err := resolveScopes(rt.Scopes, requestedScopes)
		if err != nil {
			return err
		}

		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, rt.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidGrant
			}
			return err
		}
		if rt.AccessTokenID != "" {
			if err := tx.AccessTokens().DeleteAccessToken(ctx, rt.AccessTokenID); err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		result, err = s.issue(ctx, tx, client, rt.UserID, scopes, true, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics().RecordTokenRefresh(ctx, client.ID)
	s.metrics().RecordTokenIssued(ctx, client.ID, domain.GrantRefreshToken)
	return result, nil
}

// ExchangePassword implements the password grant behind the backoff guard.
// A locked account is refused before the password is looked at and the
// lockout is left as it is.
func (s *TokenService) ExchangePassword(ctx context.Context, req PasswordRequest) (*domain.TokenPair, error) {
	now := s.now()
	l := slogx.FromContext(ctx)

	clientID := req.ClientID
	if strings.TrimSpace(clientID) == "" {
		clientID = s.DefaultClientID
		if clientID == "" {
			clientID = DefaultClientID
		}
	}

	client, err := s.authenticateClient(ctx, clientID, req.ClientSecret)
	if err != nil {
		return nil, err
	}
	if !client.AllowsGrant(domain.GrantPassword) {
		return nil, ErrUnauthorizedClient
	}

	scopes, err := resolveScopes(client.Scopes, req.Scopes)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if s.Backoff != nil {
		decision, err := s.Backoff.Check(ctx, username, req.Address)
		if err != nil {
			return nil, fmt.Errorf("backoff check: %w", err)
		}
		if !decision.Allowed {
			l.Warn("password grant refused by backoff", "username", username, "retry_after", decision.RetryAfter)
			s.metrics().RecordLoginLocked(ctx)
			s.publish(ctx, audit.Event{
				Type:       audit.EventLockedOut,
				Account:    username,
				Address:    req.Address,
				Endpoint:   req.Endpoint,
				ClientID:   client.ID,
				Failures:   decision.Record.Count,
				RetryAfter: decision.RetryAfter,
				OccurredAt: now,
			})
			return nil, &LockedError{RetryAfter: decision.RetryAfter}
		}
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err != nil || cryptox.VerifyPassword(req.Password, user.PasswordHash) != nil {
		return nil, s.passwordFailed(ctx, client, req, username, now)
	}

	if s.Backoff != nil {
		if err := s.Backoff.RecordSuccess(ctx, username, req.Address); err != nil {
			l.Error("failed to clear backoff", "username", username, "error", err)
		}
	}

	var result *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		result, err = s.issue(ctx, tx, client, user.ID, scopes, client.IssueRefreshToken, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics().RecordTokenIssued(ctx, client.ID, domain.GrantPassword)
	return result, nil
}

func (s *TokenService) passwordFailed(ctx context.Context, client domain.Client, req PasswordRequest, username string, now time.Time) error {
	l := slogx.FromContext(ctx)
	s.metrics().RecordLoginFailed(ctx)

	var failures int
	if s.Backoff != nil {
		rec, err := s.Backoff.RecordFailure(ctx, username, req.Address)
		if err != nil {
			l.Error("failed to record login failure", "username", username, "error", err)
		}
		failures = rec.Count
	}

	s.publish(ctx, audit.Event{
		Type:       audit.EventFailedLogin,
		Account:    username,
		Address:    req.Address,
		Endpoint:   req.Endpoint,
		ClientID:   client.ID,
		Failures:   failures,
		OccurredAt: now,
	})
	return ErrInvalidCredentials
}

func (s *TokenService) publish(ctx context.Context, e audit.Event) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Publish(ctx, e); err != nil {
		slogx.FromContext(ctx).Error("failed to publish audit event", "type", e.Type, "error", err)
	}
}

// ExchangeClientCredentials implements the client_credentials grant. There
// is at most one token per (client, scope): a repeat request replaces the
// stored value in place, so the previous bearer stops working.
func (s *TokenService) ExchangeClientCredentials(
	ctx context.Context,
	clientID, clientSecret string,
	requestedScopes []string,
) (*domain.TokenPair, error) {
	now := s.now()
	l := slogx.FromContext(ctx)

	client, err := s.authenticateClient(ctx, clientID, clientSecret)
	if err != nil {
		return nil, err
	}
	if client.IsPublic() {
		return nil, ErrInvalidClient
	}
	if !client.AllowsGrant(domain.GrantClientCredentials) {
		return nil, ErrUnauthorizedClient
	}

	scopes, err := resolveScopes(client.Scopes, requestedScopes)
	if err != nil {
		return nil, err
	}
	// Order-insensitive key.
	slices.Sort(scopes)

	opaque, hash, err := cryptox.NewBearer()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(s.AccessTTL)

	upsert := func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			existing, err := tx.AccessTokens().FindClientCredentialsToken(ctx, client.ID, scopes)
			switch {
			case err == nil:
				return tx.AccessTokens().ReplaceAccessTokenValue(ctx, existing.ID, hash, expiresAt, now)
			case errors.Is(err, store.ErrNotFound):
				return tx.AccessTokens().CreateAccessToken(ctx, domain.AccessToken{
					ID:        idx.New().String(),
					ClientID:  client.ID,
					TokenHash: hash,
					Scopes:    scopes,
					ExpiresAt: expiresAt,
					CreatedAt: now,
					UpdatedAt: now,
				})
			default:
				return err
			}
		})
	}

	err = upsert()
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost the insert race; the winner's row is there now.
		err = upsert()
	}
	if err != nil {
		l.Error("failed to store client credentials token", "client_id", client.ID, "error", err)
		return nil, err
	}

	s.metrics().RecordTokenIssued(ctx, client.ID, domain.GrantClientCredentials)
	return &domain.TokenPair{
		AccessToken: opaque,
		TokenType:   domain.TokenTypeBearer,
		ExpiresIn:   s.AccessTTL,
		Scopes:      scopes,
	}, nil
}

// Revoke implements RFC 7009. Unknown tokens and tokens of other clients are
// ignored so the caller learns nothing.
func (s *TokenService) Revoke(ctx context.Context, clientID, clientSecret, token, hint string) error {
	l := slogx.FromContext(ctx)

	client, err := s.authenticateClient(ctx, clientID, clientSecret)
	if err != nil {
		return err
	}

	hash := cryptox.FingerprintToken(strings.TrimSpace(token))

	revokeRefresh := func(tx store.Tx) (bool, error) {
		rt, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
		if errors.Is(err, store.ErrNotFound) || (err == nil && rt.ClientID != client.ID) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, rt.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return false, err
		}
		if rt.AccessTokenID != "" {
			if err := tx.AccessTokens().DeleteAccessToken(ctx, rt.AccessTokenID); err != nil && !errors.Is(err, store.ErrNotFound) {
				return false, err
			}
		}
		return true, nil
	}

	revokeAccess := func(tx store.Tx) (bool, error) {
		at, err := tx.AccessTokens().GetAccessTokenByHash(ctx, hash)
		if errors.Is(err, store.ErrNotFound) || (err == nil && at.ClientID != client.ID) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if err := tx.AccessTokens().DeleteAccessToken(ctx, at.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return false, err
		}
		return true, nil
	}

	order := []func(store.Tx) (bool, error){revokeRefresh, revokeAccess}
	kinds := []string{"refresh_token", "access_token"}
	if hint == "access_token" {
		slices.Reverse(order)
		slices.Reverse(kinds)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		for i, fn := range order {
			done, err := fn(tx)
			if err != nil {
				return err
			}
			if done {
				l.Info("token revoked", "client_id", client.ID, "kind", kinds[i])
				s.metrics().RecordTokenRevocation(ctx, kinds[i])
				return nil
			}
		}
		return nil
	})
}

// AuthenticateToken resolves a bearer value. Unknown and expired tokens fail
// the same way.
func (s *TokenService) AuthenticateToken(ctx context.Context, raw string) (httpx.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return httpx.Identity{}, ErrInvalidToken
	}

	at, err := s.Store.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(raw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, ErrInvalidToken
		}
		return httpx.Identity{}, err
	}
	if at.IsExpired(s.now()) {
		return httpx.Identity{}, ErrInvalidToken
	}

	id := httpx.Identity{
		UserID:   at.UserID,
		ClientID: at.ClientID,
		TokenID:  at.ID,
		Scopes:   at.Scopes,
	}
	if at.UserID == "" {
		return id, nil
	}

	user, err := s.Store.Users().GetUserByID(ctx, at.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, ErrInvalidToken
		}
		return httpx.Identity{}, err
	}
	id.EmailVerified = user.EmailVerified
	if !id.EmailVerified {
		client, err := s.Store.Clients().GetClientByID(ctx, at.ClientID)
		if err == nil {
			id.EmailVerified = client.TrustEmailVerification
		}
	}
	return id, nil
}

// issue stores a new access token, and a linked refresh token when
// withRefresh is set, inside tx.
func (s *TokenService) issue(
	ctx context.Context,
	tx store.Tx,
	client domain.Client,
	userID string,
	scopes []string,
	withRefresh bool,
	now time.Time,
) (*domain.TokenPair, error) {
	accessOpaque, accessHash, err := cryptox.NewBearer()
	if err != nil {
		return nil, err
	}

	access := domain.AccessToken{
		ID:        idx.New().String(),
		UserID:    userID,
		ClientID:  client.ID,
		TokenHash: accessHash,
		Scopes:    scopes,
		ExpiresAt: now.Add(s.AccessTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.AccessTokens().CreateAccessToken(ctx, access); err != nil {
		return nil, err
	}

	pair := &domain.TokenPair{
		AccessToken: accessOpaque,
		TokenType:   domain.TokenTypeBearer,
		ExpiresIn:   s.AccessTTL,
		Scopes:      scopes,
	}
	if !withRefresh {
		return pair, nil
	}

	refreshOpaque, refreshHash, err := cryptox.NewBearer()
	if err != nil {
		return nil, err
	}
	refresh := domain.RefreshToken{
		ID:            idx.New().String(),
		AccessTokenID: access.ID,
		UserID:        userID,
		ClientID:      client.ID,
		TokenHash:     refreshHash,
		Scopes:        scopes,
		ExpiresAt:     now.Add(s.RefreshTTL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := tx.RefreshTokens().CreateRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}
	pair.RefreshToken = refreshOpaque
	return pair, nil
}
