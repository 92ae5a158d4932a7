package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite/gen"
)

// ErrNestedTx is returned by Tx on a store that is already a transaction.
var ErrNestedTx = errors.New("sqlite: nested transactions are not supported, use WithTx")

type txStore struct {
	tx    *sql.Tx
	q     *gen.Queries
	depth int // savepoint counter for nested WithTx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: gen.New(tx)}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close leaves the transaction to its owner.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }

func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, ErrNestedTx
}

// WithTx runs fn inside a savepoint of the enclosing transaction. An error
// from fn undoes only the savepoint's writes.
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	t.depth++
	name := fmt.Sprintf("sp_%d", t.depth)
	defer func() { t.depth-- }()

	if _, err := t.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := fn(t); err != nil {
		if _, rbErr := t.tx.ExecContext(ctx, "ROLLBACK TO "+name); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		_, _ = t.tx.ExecContext(ctx, "RELEASE "+name)
		return err
	}
	_, err := t.tx.ExecContext(ctx, "RELEASE "+name)
	return err
}

func (t *txStore) Users() store.Users     { return &usersRepo{q: t.q} }
func (t *txStore) Clients() store.Clients { return &clientsRepo{q: t.q} }
func (t *txStore) AuthorizationCodes() store.AuthorizationCodes {
	return &authorizationCodesRepo{q: t.q}
}
func (t *txStore) AccessTokens() store.AccessTokens   { return &accessTokensRepo{q: t.q, db: t.tx} }
func (t *txStore) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{q: t.q} }

// ApplyMigrations is a no-op; the schema is migrated before any transaction.
func (t *txStore) ApplyMigrations() error { return nil }
