package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/idx"
	"github.com/snehalbaghel/badgr-server/pkg/otelx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

var (
	ErrLoginRequired           = errors.New("login_required")
	ErrInvalidRequest          = errors.New("invalid_request")
	ErrRedirectURIMismatch     = errors.New("redirect_uri_mismatch")
	ErrUnsupportedResponseType = errors.New("unsupported_response_type")
)

// ApprovalPromptAuto skips consent when an earlier grant already covers the
// request.
const ApprovalPromptAuto = "auto"

// DefaultCodeTTL applies when AuthorizeService.CodeTTL is unset.
const DefaultCodeTTL = 5 * time.Minute

// AuthorizeService issues authorization codes for a signed-in user.
type AuthorizeService struct {
	Store   store.Store
	CodeTTL time.Duration
	Metrics *otelx.Metrics
	Now     func() time.Time
}

// AuthorizeRequest is the consent request. UserID comes from the
// authenticated session, never from the request body.
type AuthorizeRequest struct {
	UserID string

	ResponseType        string
	ClientID            string
	RedirectURI         string
	Scopes              []string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string

	// Allow is the user's answer on POST. ApprovalPrompt is only read by
	// Preflight.
	Allow          bool
	ApprovalPrompt string
}

// PreflightResult is what the consent screen needs. SuccessURL is set
// instead when consent could be skipped.
type PreflightResult struct {
	Client      domain.Client
	Scopes      []string
	RedirectURI string
	State       string
	SuccessURL  string
}

type validatedRequest struct {
	client    domain.Client
	scopes    []string
	challenge string
	method    string
}

func (s *AuthorizeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthorizeService) metrics() *otelx.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return noopMetrics
}

// Authorize records the user's consent decision. A denial still succeeds
// and yields a redirect carrying error=access_denied; an approval persists a
// single-use code and returns {redirect_uri}?code=...&state=....
//
// Errors:
//   - ErrLoginRequired without a signed-in user
//   - ErrUnsupportedResponseType for anything but "code"
//   - ErrInvalidClient for an unknown client_id
//   - ErrRedirectURIMismatch when redirect_uri is not registered verbatim
//   - ErrInvalidScope when a scope is outside the client's scopes
//   - ErrInvalidRequest for missing or bad PKCE parameters
func (s *AuthorizeService) Authorize(ctx context.Context, req AuthorizeRequest) (string, error) {
	l := slogx.FromContext(ctx)

	v, err := s.validate(ctx, req)
	if err != nil {
		return "", err
	}

	if !req.Allow {
		l.Info("authorization denied by user", "client_id", v.client.ID, "user_id", req.UserID)
		return buildRedirect(req.RedirectURI, url.Values{"error": {"access_denied"}}, req.State)
	}

	code, err := s.issueCode(ctx, req, v)
	if err != nil {
		return "", err
	}
	return buildRedirect(req.RedirectURI, url.Values{"code": {code}}, req.State)
}

// Preflight validates a GET /o/authorize request. Clients flagged to skip
// authorization, and approval_prompt=auto requests already covered by one of
// the user's live tokens for the client, get a code straight away.
func (s *AuthorizeService) Preflight(ctx context.Context, req AuthorizeRequest) (*PreflightResult, error) {
	v, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &PreflightResult{
		Client:      v.client,
		Scopes:      v.scopes,
		RedirectURI: req.RedirectURI,
		State:       req.State,
	}

	skip := v.client.SkipAuthorization
	if !skip && strings.EqualFold(req.ApprovalPrompt, ApprovalPromptAuto) {
		skip, err = s.alreadyGranted(ctx, req.UserID, v.client.ID, v.scopes)
		if err != nil {
			return nil, err
		}
	}
	if !skip {
		return result, nil
	}

	code, err := s.issueCode(ctx, req, v)
	if err != nil {
		return nil, err
	}
	result.SuccessURL, err = buildRedirect(req.RedirectURI, url.Values{"code": {code}}, req.State)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AuthorizeService) alreadyGranted(ctx context.Context, userID, clientID string, scopes []string) (bool, error) {
	tokens, err := s.Store.AccessTokens().ListAccessTokens(ctx, store.AccessTokenFilter{
		UserID:   userID,
		ClientID: clientID,
		LiveAt:   s.now(),
	})
	if err != nil {
		return false, err
	}
	for _, t := range tokens {
		if domain.ScopesCover(t.Token.Scopes, scopes) {
			return true, nil
		}
	}
	return false, nil
}

func (s *AuthorizeService) validate(ctx context.Context, req AuthorizeRequest) (validatedRequest, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return validatedRequest{}, ErrLoginRequired
	}
	if !strings.EqualFold(strings.TrimSpace(req.ResponseType), domain.ResponseTypeCode) {
		return validatedRequest{}, ErrUnsupportedResponseType
	}
	if strings.TrimSpace(req.ClientID) == "" || strings.TrimSpace(req.RedirectURI) == "" {
		return validatedRequest{}, ErrInvalidRequest
	}

	client, err := s.Store.Clients().GetClientByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return validatedRequest{}, ErrInvalidClient
		}
		return validatedRequest{}, err
	}

	if !client.HasRedirectURI(req.RedirectURI) {
		slogx.FromContext(ctx).Info("authorize redirect_uri mismatch", "client_id", client.ID)
		return validatedRequest{}, ErrRedirectURIMismatch
	}
	if !client.AllowsGrant(domain.GrantAuthorizationCode) {
		return validatedRequest{}, ErrUnauthorizedClient
	}

	scopes, err := resolveScopes(client.Scopes, req.Scopes)
	if err != nil {
		return validatedRequest{}, err
	}

	challenge, method, err := validatePKCE(req.CodeChallenge, req.CodeChallengeMethod, client)
	if err != nil {
		return validatedRequest{}, err
	}

	return validatedRequest{client: client, scopes: scopes, challenge: challenge, method: method}, nil
}

func (s *AuthorizeService) issueCode(ctx context.Context, req AuthorizeRequest, v validatedRequest) (string, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	ttl := s.CodeTTL
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}

	code, codeHash, err := cryptox.NewBearer()
	if err != nil {
		return "", err
	}

	err = s.Store.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:                  idx.New().String(),
		UserID:              req.UserID,
		ClientID:            v.client.ID,
		CodeHash:            codeHash,
		RedirectURI:         req.RedirectURI,
		Scopes:              v.scopes,
		CodeChallenge:       v.challenge,
		CodeChallengeMethod: v.method,
		ExpiresAt:           now.Add(ttl),
		CreatedAt:           now,
	})
	if err != nil {
		l.Error("failed to store authorization code", "client_id", v.client.ID, "error", err)
		return "", err
	}

	l.Info("authorization code issued", "client_id", v.client.ID, "user_id", req.UserID, "pkce_method", v.method)
	s.metrics().RecordCodeIssued(ctx, v.client.ID, v.method)
	return code, nil
}

// buildRedirect appends params and state to the registered redirect URI,
// keeping any query it already has.
func buildRedirect(redirectURI string, params url.Values, state string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", ErrRedirectURIMismatch
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// validatePKCE normalises the challenge parameters. Public clients must send
// a challenge; the method defaults to S256.
func validatePKCE(challenge, method string, client domain.Client) (string, string, error) {
	trimmedChallenge := strings.TrimSpace(challenge)
	trimmedMethod := strings.TrimSpace(method)

	if trimmedChallenge == "" {
		if client.IsPublic() {
			return "", "", ErrInvalidRequest
		}
		return "", "", nil
	}

	var normalizedMethod string
	switch {
	case strings.EqualFold(trimmedMethod, cryptox.PKCEMethodS256):
		normalizedMethod = cryptox.PKCEMethodS256
	case strings.EqualFold(trimmedMethod, cryptox.PKCEMethodPlain):
		normalizedMethod = cryptox.PKCEMethodPlain
	case trimmedMethod == "":
		normalizedMethod = cryptox.PKCEMethodS256
	default:
		return "", "", ErrInvalidRequest
	}

	return trimmedChallenge, normalizedMethod, nil
}
