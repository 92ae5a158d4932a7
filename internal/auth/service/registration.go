package service

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/snehalbaghel/badgr-server/pkg/idx"
	"github.com/snehalbaghel/badgr-server/pkg/otelx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// Registration rejection messages. They are part of the wire contract.
const (
	MsgMissingFields        = "Missing required fields"
	MsgURISchemeNotHTTPS    = "URI schemes must be HTTPS"
	MsgRedirectURITaken     = "Redirect URI already registered"
	MsgURIHostMismatch      = "URIs do not match"
	MsgClientAlreadyExists  = "Client already registered"
	MsgInvalidScope         = "Invalid scope"
	MsgInvalidAuthMethod    = "Invalid token authentication method"
	MsgMissingAuthCodeGrant = "Missing authorization_code grant type"
	MsgInvalidGrantTypes    = "Invalid grant types"
	MsgInvalidResponseType  = "Invalid response type"
)

// RegistrationError is a rejected registration. Message is shown to the
// caller verbatim.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }

func rejected(msg string) error { return &RegistrationError{Message: msg} }

// RegistrationRequest is the dynamic client registration payload. Optional
// URIs are empty when absent.
type RegistrationRequest struct {
	ClientName              string
	ClientURI               string
	RedirectURIs            []string
	GrantTypes              []string
	ResponseTypes           []string
	LogoURI                 string
	TOSURI                  string
	PolicyURI               string
	SoftwareID              string
	SoftwareVersion         string
	Scope                   string
	TokenEndpointAuthMethod string
}

// RegisteredClient is the stored client plus its plaintext secret, which is
// never shown again.
type RegisteredClient struct {
	Client domain.Client
	Secret string
}

// RegistrationService validates and stores dynamically registered clients.
type RegistrationService struct {
	Store   store.Store
	Metrics *otelx.Metrics
	Now     func() time.Time
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *RegistrationService) metrics() *otelx.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return noopMetrics
}

// Register validates req and creates the client. The first failing check
// decides the *RegistrationError; nothing is written on failure.
//
// Checks, in order: required fields, HTTPS on every URI, redirect URIs not
// already owned by another client, hosts matching client_uri, then client_uri
// uniqueness, scope, token endpoint auth method, grant types and response
// types.
func (s *RegistrationService) Register(ctx context.Context, req RegistrationRequest) (*RegisteredClient, error) {
	l := slogx.FromContext(ctx)

	res, err := s.register(ctx, req)
	if err != nil {
		var regErr *RegistrationError
		if errors.As(err, &regErr) {
			l.Info("client registration rejected", "client_uri", req.ClientURI, "reason", regErr.Message)
			s.metrics().RecordRegistrationRejected(ctx, regErr.Message)
		} else {
			l.Error("client registration failed", "error", err)
		}
		return nil, err
	}

	l.Info("client registered", "client_id", res.Client.ID, "client_uri", res.Client.ClientURI)
	s.metrics().RecordClientRegistration(ctx)
	return res, nil
}

func (s *RegistrationService) register(ctx context.Context, req RegistrationRequest) (*RegisteredClient, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientURI = strings.TrimSpace(req.ClientURI)
	req.RedirectURIs = domain.NormalizeFields(req.RedirectURIs)

	if req.ClientName == "" || req.ClientURI == "" || len(req.RedirectURIs) == 0 {
		return nil, rejected(MsgMissingFields)
	}

	checked := []string{req.ClientURI}
	for _, u := range []string{req.LogoURI, req.TOSURI, req.PolicyURI} {
		if u != "" {
			checked = append(checked, u)
		}
	}
	checked = append(checked, req.RedirectURIs...)
	for _, raw := range checked {
		if !isHTTPS(raw) {
			return nil, rejected(MsgURISchemeNotHTTPS)
		}
	}

	if err := s.checkRedirectsFree(ctx, s.Store, req.RedirectURIs); err != nil {
		return nil, err
	}

	host := hostOf(req.ClientURI)
	for _, u := range []string{req.RedirectURIs[0], req.LogoURI, req.TOSURI, req.PolicyURI} {
		if u != "" && hostOf(u) != host {
			return nil, rejected(MsgURIHostMismatch)
		}
	}

	exists, err := s.Store.Clients().ClientURIExists(ctx, req.ClientURI)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, rejected(MsgClientAlreadyExists)
	}

	scopes := domain.BadgeConnectScopes()
	if requested := httpx.ParseSpaceDelimitedFields(req.Scope); len(requested) > 0 {
		for _, sc := range requested {
			if !slices.Contains(scopes, sc) {
				return nil, rejected(MsgInvalidScope)
			}
		}
		scopes = domain.NormalizeScopes(requested)
	}

	authMethod := strings.TrimSpace(req.TokenEndpointAuthMethod)
	if authMethod == "" {
		authMethod = domain.AuthMethodClientSecretBasic
	}
	if authMethod != domain.AuthMethodClientSecretBasic {
		return nil, rejected(MsgInvalidAuthMethod)
	}

	grantTypes := domain.NormalizeFields(req.GrantTypes)
	if !slices.Contains(grantTypes, domain.GrantAuthorizationCode) {
		return nil, rejected(MsgMissingAuthCodeGrant)
	}
	for _, gt := range grantTypes {
		if gt != domain.GrantAuthorizationCode && gt != domain.GrantRefreshToken {
			return nil, rejected(MsgInvalidGrantTypes)
		}
	}

	responseTypes := domain.NormalizeFields(req.ResponseTypes)
	if !slices.Equal(responseTypes, []string{domain.ResponseTypeCode}) {
		return nil, rejected(MsgInvalidResponseType)
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	secretHash, err := cryptox.HashPassword(secret)
	if err != nil {
		return nil, err
	}

	now := s.now()
	client := domain.Client{
		ID:                      idx.New().String(),
		Name:                    req.ClientName,
		SecretHash:              secretHash,
		GrantTypes:              grantTypes,
		ResponseTypes:           responseTypes,
		RedirectURIs:            req.RedirectURIs,
		Scopes:                  scopes,
		ClientURI:               req.ClientURI,
		LogoURI:                 req.LogoURI,
		TOSURI:                  req.TOSURI,
		PolicyURI:               req.PolicyURI,
		SoftwareID:              req.SoftwareID,
		SoftwareVersion:         req.SoftwareVersion,
		TokenEndpointAuthMethod: authMethod,
		IssueRefreshToken:       slices.Contains(grantTypes, domain.GrantRefreshToken),
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Re-checked under the transaction for concurrent registrations.
		if err := s.checkRedirectsFree(ctx, tx, req.RedirectURIs); err != nil {
			return err
		}
		if err := tx.Clients().CreateClient(ctx, client); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return rejected(MsgRedirectURITaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisteredClient{Client: client, Secret: secret}, nil
}

func (s *RegistrationService) checkRedirectsFree(ctx context.Context, st store.Store, uris []string) error {
	for _, uri := range uris {
		_, err := st.Clients().RedirectURIOwner(ctx, uri)
		if err == nil {
			return rejected(MsgRedirectURITaken)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

func isHTTPS(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && u.Scheme == "https" && u.Host != ""
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
