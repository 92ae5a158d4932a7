package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/authcode"
	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/otelx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// ErrInvalidAuthcode is the only error Exchange returns for a bad code. The
// underlying reason goes to the log and the reason metric attribute.
var ErrInvalidAuthcode = errors.New("invalid or expired code")

// DefaultAuthcodeTTL applies when AuthcodeService.TTL is unset.
const DefaultAuthcodeTTL = time.Minute

// Authcode rejection reasons.
const (
	reasonMalformed = "malformed"
	reasonExpired   = "expired"
	reasonRevoked   = "revoked"
)

// AuthcodeService trades an access token for a short-lived sealed code and
// back, so a token can cross a browser redirect without appearing in it.
type AuthcodeService struct {
	Store   store.Store
	Codec   *authcode.Codec
	TTL     time.Duration
	Metrics *otelx.Metrics
	Now     func() time.Time
}

func (s *AuthcodeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthcodeService) metrics() *otelx.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return noopMetrics
}

func (s *AuthcodeService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultAuthcodeTTL
}

// Mint encodes accessToken, which must still be live, into an authcode.
func (s *AuthcodeService) Mint(ctx context.Context, accessToken string) (string, time.Duration, error) {
	accessToken = strings.TrimSpace(accessToken)

	at, err := s.Store.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(accessToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", 0, ErrInvalidToken
		}
		return "", 0, err
	}
	if at.IsExpired(s.now()) {
		return "", 0, ErrInvalidToken
	}

	ttl := s.ttl()
	code, err := s.Codec.Encode(accessToken, ttl)
	if err != nil {
		return "", 0, err
	}

	slogx.FromContext(ctx).Info("authcode minted", "client_id", at.ClientID, "user_id", at.UserID)
	s.metrics().RecordAuthcodeMinted(ctx)
	return code, ttl, nil
}

// Exchange decodes code and returns the access token it names, provided the
// token still exists and has not expired.
func (s *AuthcodeService) Exchange(ctx context.Context, code string) (*domain.TokenPair, error) {
	ref, err := s.Codec.Decode(strings.TrimSpace(code))
	if err != nil {
		reason := reasonMalformed
		if errors.Is(err, authcode.ErrExpired) {
			reason = reasonExpired
		}
		return nil, s.reject(ctx, reason, err)
	}

	now := s.now()
	at, err := s.Store.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(ref))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.reject(ctx, reasonRevoked, err)
		}
		return nil, err
	}
	if at.IsExpired(now) {
		return nil, s.reject(ctx, reasonExpired, nil)
	}

	return &domain.TokenPair{
		AccessToken: ref,
		TokenType:   domain.TokenTypeBearer,
		ExpiresIn:   at.ExpiresAt.Sub(now),
		Scopes:      at.Scopes,
	}, nil
}

func (s *AuthcodeService) reject(ctx context.Context, reason string, cause error) error {
	slogx.FromContext(ctx).Info("authcode rejected", "reason", reason, "error", cause)
	s.metrics().RecordAuthcodeRejected(ctx, reason)
	return ErrInvalidAuthcode
}
