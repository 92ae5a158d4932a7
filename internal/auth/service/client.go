package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/idx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

var ErrClientNotFound = errors.New("client not found")

type ClientService struct {
	Store store.Store
}

// ClientSpec describes an operator-created client. Unlike dynamic
// registration it may ask for any grant type and for trust flags.
type ClientSpec struct {
	ID                     string // generated when empty
	Name                   string
	Confidential           bool
	GrantTypes             []string
	RedirectURIs           []string
	Scopes                 []string
	ClientURI              string
	SkipAuthorization      bool
	TrustEmailVerification bool
}

// CreateClient creates a new OAuth2 client.
// If spec.Confidential is set a secure secret is generated and returned; it
// is shown only once.
func (s *ClientService) CreateClient(ctx context.Context, spec ClientSpec) (clientID string, plaintextSecret string, err error) {
	l := slogx.FromContext(ctx)

	// Generate and hash secret if confidential client
	var secretHash string
	if spec.Confidential {
		secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			l.Error("failed to generate client secret", "error", err)
			return "", "", err
		}
		plaintextSecret = secret

		secretHash, err = cryptox.HashPassword(secret)
		if err != nil {
			l.Error("failed to hash client secret", "error", err)
			return "", "", err
		}
	}

	clientID = spec.ID
	if clientID == "" {
		clientID = idx.New().String()
	}

	grantTypes := domain.NormalizeFields(spec.GrantTypes)
	var responseTypes []string
	if slices.Contains(grantTypes, domain.GrantAuthorizationCode) {
		responseTypes = []string{domain.ResponseTypeCode}
	}

	now := time.Now().UTC()
	err = s.Store.Clients().CreateClient(ctx, domain.Client{
		ID:                      clientID,
		Name:                    spec.Name,
		SecretHash:              secretHash,
		GrantTypes:              grantTypes,
		ResponseTypes:           responseTypes,
		RedirectURIs:            spec.RedirectURIs,
		Scopes:                  domain.NormalizeScopes(spec.Scopes),
		ClientURI:               spec.ClientURI,
		TokenEndpointAuthMethod: domain.AuthMethodClientSecretBasic,
		IssueRefreshToken:       slices.Contains(grantTypes, domain.GrantRefreshToken),
		TrustEmailVerification:  spec.TrustEmailVerification,
		SkipAuthorization:       spec.SkipAuthorization,
		CreatedAt:               now,
		UpdatedAt:               now,
	})
	if err != nil {
		l.Error("failed to create client", "error", err)
		return "", "", err
	}

	l.Info("client created successfully", "client_id", clientID, "name", spec.Name, "has_secret", spec.Confidential)
	return clientID, plaintextSecret, nil
}

// ListClients returns all OAuth2 clients.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// RotateSecret issues a new secret for a confidential client.
func (s *ClientService) RotateSecret(ctx context.Context, clientID string) (string, error) {
	l := slogx.FromContext(ctx)

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrClientNotFound
		}
		return "", err
	}
	if client.IsPublic() {
		return "", ErrInvalidClient
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}
	hash, err := cryptox.HashPassword(secret)
	if err != nil {
		return "", err
	}
	if err := s.Store.Clients().UpdateClientSecretHash(ctx, clientID, hash); err != nil {
		return "", err
	}

	l.Info("client secret rotated", "client_id", clientID)
	return secret, nil
}

// DeleteClient deletes an OAuth2 client and everything issued to it.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	l := slogx.FromContext(ctx)

	if _, err := s.Store.Clients().GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	if err := s.Store.Clients().DeleteClient(ctx, clientID); err != nil {
		l.Error("failed to delete client", "error", err, "client_id", clientID)
		return err
	}

	l.Info("client deleted successfully", "client_id", clientID)
	return nil
}
