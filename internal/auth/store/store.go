package store

import (
	"context"
	"errors"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories are exposed as methods so a transaction-scoped Store can
// hand out the same repos bound to the transaction.
type Store interface {
	Users() Users
	Clients() Clients
	AuthorizationCodes() AuthorizationCodes
	AccessTokens() AccessTokens
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during the password grant. Lookup is case
	// insensitive.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
	SetEmailVerified(ctx context.Context, userID string, verified bool) error

	// DeleteUser cascades to codes and tokens.
	DeleteUser(ctx context.Context, userID string) error
}

type Clients interface {
	// GetClientByID returns the client with its redirect URIs in
	// registration order.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns all clients, newest first.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts the client and its redirect URIs. A redirect URI
	// already owned by another client yields ErrAlreadyExists.
	CreateClient(ctx context.Context, c domain.Client) error

	// ClientURIExists reports whether any client was registered with uri.
	ClientURIExists(ctx context.Context, uri string) (bool, error)

	// RedirectURIOwner returns the id of the client owning uri or
	// ErrNotFound.
	RedirectURIOwner(ctx context.Context, uri string) (string, error)

	UpdateClientSecretHash(ctx context.Context, clientID, secretHash string) error

	// DeleteClient cascades to codes, tokens and redirect URIs.
	DeleteClient(ctx context.Context, clientID string) error
}

type AuthorizationCodes interface {
	CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error

	// GetAuthorizationCodeByHash fetches a code by its fingerprint.
	GetAuthorizationCodeByHash(ctx context.Context, hash string) (domain.AuthorizationCode, error)

	// ConsumeAuthorizationCode sets used_at on a code that has not been used.
	// It returns ErrNotFound when the code is missing or already consumed, so
	// of two concurrent callers only one succeeds.
	ConsumeAuthorizationCode(ctx context.Context, id string, usedAt time.Time) error

	DeleteExpiredAuthorizationCodes(ctx context.Context, now time.Time) error
}

// AccessTokenFilter narrows ListAccessTokens. Zero values do not filter.
type AccessTokenFilter struct {
	UserID   string
	ClientID string
	// LiveAt, when set, keeps only tokens expiring after it.
	LiveAt time.Time
}

type AccessTokens interface {
	CreateAccessToken(ctx context.Context, t domain.AccessToken) error
	GetAccessTokenByID(ctx context.Context, id string) (domain.AccessToken, error)
	GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error)

	// FindClientCredentialsToken returns the userless token minted for
	// (clientID, scopes), live or expired.
	FindClientCredentialsToken(ctx context.Context, clientID string, scopes []string) (domain.AccessToken, error)

	// ReplaceAccessTokenValue swaps the stored hash and expiry of an
	// existing token, keeping its identity and creation time.
	ReplaceAccessTokenValue(ctx context.Context, id, newHash string, expiresAt, updatedAt time.Time) error

	// ListAccessTokens returns tokens joined with their client.
	ListAccessTokens(ctx context.Context, filter AccessTokenFilter) ([]domain.IssuedToken, error)

	DeleteAccessToken(ctx context.Context, id string) error
	DeleteExpiredAccessTokens(ctx context.Context, now time.Time) error
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked on a live token. It returns
	// ErrNotFound when the token is missing or already revoked.
	RevokeRefreshToken(ctx context.Context, id string) error

	// RevokeAllUserClientRefreshTokens bulk revocation for a user+client pair.
	RevokeAllUserClientRefreshTokens(ctx context.Context, userID, clientID string) error

	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error
}
