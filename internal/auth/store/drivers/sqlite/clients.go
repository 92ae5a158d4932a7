package sqlite

import (
	"context"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/gen"
)

type clientsRepo struct {
	q *gen.Queries
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row, err := r.q.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	uris, err := r.q.ListClientRedirectURIs(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	return mapClient(row, uris), nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, len(rows))
	for i, row := range rows {
		uris, err := r.q.ListClientRedirectURIs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		clients[i] = mapClient(row, uris)
	}
	return clients, nil
}

// CreateClient should run inside a transaction so a conflicting redirect URI
// leaves no client row behind.
func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	err := r.q.CreateClient(ctx, gen.CreateClientParams{
		ID:                      c.ID,
		Name:                    c.Name,
		SecretHash:              mapStringNull(c.SecretHash),
		GrantTypes:              joinFields(c.GrantTypes),
		ResponseTypes:           joinFields(c.ResponseTypes),
		Scopes:                  joinFields(c.Scopes),
		ClientUri:               c.ClientURI,
		LogoUri:                 c.LogoURI,
		TosUri:                  c.TOSURI,
		PolicyUri:               c.PolicyURI,
		SoftwareID:              c.SoftwareID,
		SoftwareVersion:         c.SoftwareVersion,
		TokenEndpointAuthMethod: c.TokenEndpointAuthMethod,
		IssueRefreshToken:       c.IssueRefreshToken,
		TrustEmailVerification:  c.TrustEmailVerification,
		SkipAuthorization:       c.SkipAuthorization,
		CreatedAt:               utc(c.CreatedAt),
		UpdatedAt:               utc(c.UpdatedAt),
	})
	if err != nil {
		return mapConstraint(err)
	}

	for i, uri := range c.RedirectURIs {
		if err := r.q.CreateClientRedirectURI(ctx, gen.CreateClientRedirectURIParams{
			Uri:      uri,
			ClientID: c.ID,
			Position: int64(i),
		}); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *clientsRepo) ClientURIExists(ctx context.Context, uri string) (bool, error) {
	n, err := r.q.CountClientsByClientURI(ctx, uri)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *clientsRepo) RedirectURIOwner(ctx context.Context, uri string) (string, error) {
	id, err := r.q.GetRedirectURIOwner(ctx, uri)
	if err != nil {
		return "", mapNotFound(err)
	}
	return id, nil
}

func (r *clientsRepo) UpdateClientSecretHash(ctx context.Context, clientID, secretHash string) error {
	return expectRows(r.q.UpdateClientSecretHash(ctx, gen.UpdateClientSecretHashParams{
		SecretHash: mapStringNull(secretHash),
		UpdatedAt:  utc(time.Now()),
		ID:         clientID,
	}))
}

func (r *clientsRepo) DeleteClient(ctx context.Context, clientID string) error {
	return expectRows(r.q.DeleteClient(ctx, clientID))
}

var _ store.Clients = (*clientsRepo)(nil)
