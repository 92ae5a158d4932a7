package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/gen"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// FileDSN is the DSN for a database file shared by several processes or
// pooled connections.
func FileDSN(path string) string {
	return "file:" + path + "?_pragma=journal_mode(WAL)"
}

// NewStore opens the database at dsn. Timestamps are written in the sqlite
// text format so expiry comparisons in SQL order correctly. An in-memory
// database is pinned to one connection, otherwise every pooled connection
// would see its own empty database.
//
// Transactions begin IMMEDIATE and connections wait up to five seconds for
// the write lock. A second writer therefore blocks until the first commits
// and then reads its result, instead of failing with SQLITE_BUSY when it
// upgrades a read lock. Conditional updates such as consuming a code rely
// on this.
func NewStore(dsn string) (*Store, error) {
	if !strings.Contains(dsn, "_time_format=") {
		dsn = withParam(dsn, "_time_format=sqlite")
	}
	// Pragmas are applied on every pooled connection, not just the first.
	if !strings.Contains(dsn, "foreign_keys") {
		dsn = withParam(dsn, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		dsn = withParam(dsn, "_pragma=busy_timeout(5000)")
	}
	if !strings.Contains(dsn, "_txlock=") {
		dsn = withParam(dsn, "_txlock=immediate")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func withParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users                           { return &usersRepo{q: s.q} }
func (s *Store) Clients() store.Clients                       { return &clientsRepo{q: s.q} }
func (s *Store) AuthorizationCodes() store.AuthorizationCodes { return &authorizationCodesRepo{q: s.q} }
func (s *Store) AccessTokens() store.AccessTokens             { return &accessTokensRepo{q: s.q, db: s.db} }
func (s *Store) RefreshTokens() store.RefreshTokens           { return &refreshTokensRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *sqlitedrv.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}

// expectRows maps a zero row count from an :execrows query to ErrNotFound.
func expectRows(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func utc(t time.Time) time.Time { return t.UTC() }

func joinFields(fields []string) string { return strings.Join(fields, " ") }

func splitAndFilter(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Fields(s)
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:            row.ID,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		EmailVerified: row.EmailVerified,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func mapClient(row gen.Client, redirectURIs []string) domain.Client {
	return domain.Client{
		ID:                      row.ID,
		Name:                    row.Name,
		SecretHash:              mapNullString(row.SecretHash),
		GrantTypes:              splitAndFilter(row.GrantTypes),
		ResponseTypes:           splitAndFilter(row.ResponseTypes),
		RedirectURIs:            redirectURIs,
		Scopes:                  splitAndFilter(row.Scopes),
		ClientURI:               row.ClientUri,
		LogoURI:                 row.LogoUri,
		TOSURI:                  row.TosUri,
		PolicyURI:               row.PolicyUri,
		SoftwareID:              row.SoftwareID,
		SoftwareVersion:         row.SoftwareVersion,
		TokenEndpointAuthMethod: row.TokenEndpointAuthMethod,
		IssueRefreshToken:       row.IssueRefreshToken,
		TrustEmailVerification:  row.TrustEmailVerification,
		SkipAuthorization:       row.SkipAuthorization,
		CreatedAt:               row.CreatedAt,
		UpdatedAt:               row.UpdatedAt,
	}
}

func mapAuthorizationCode(row gen.AuthorizationCode) domain.AuthorizationCode {
	return domain.AuthorizationCode{
		ID:                  row.ID,
		UserID:              row.UserID,
		ClientID:            row.ClientID,
		CodeHash:            row.CodeHash,
		RedirectURI:         row.RedirectUri,
		Scopes:              splitAndFilter(row.Scopes),
		CodeChallenge:       row.CodeChallenge,
		CodeChallengeMethod: row.CodeChallengeMethod,
		ExpiresAt:           row.ExpiresAt,
		UsedAt:              mapNullTimePtr(row.UsedAt),
		CreatedAt:           row.CreatedAt,
	}
}

func mapAccessToken(row gen.AccessToken) domain.AccessToken {
	return domain.AccessToken{
		ID:        row.ID,
		UserID:    mapNullString(row.UserID),
		ClientID:  row.ClientID,
		TokenHash: row.TokenHash,
		Scopes:    splitAndFilter(row.Scopes),
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapRefreshToken(row gen.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		ID:            row.ID,
		AccessTokenID: mapNullString(row.AccessTokenID),
		UserID:        row.UserID,
		ClientID:      row.ClientID,
		TokenHash:     row.TokenHash,
		Scopes:        splitAndFilter(row.Scopes),
		ExpiresAt:     row.ExpiresAt,
		Revoked:       row.Revoked,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
