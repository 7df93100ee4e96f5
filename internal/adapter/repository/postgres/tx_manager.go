package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/financo/internal/usecase"
)

// beginner is the slice of pgxpool.Pool the manager needs; tests
// substitute a pgxmock pool here.
type beginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager hands out database transactions to the usecases. It is the
// only implementation of usecase.TransactionManager.
type TxManager struct {
	pool beginner
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool beginner) *TxManager {
	return &TxManager{pool: pool}
}

// Begin opens a transaction. The caller owns it: Commit or Rollback
// must be called, and repositories reach the raw pgx.Tx through PgxTx.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{inner: tx}, nil
}

// Tx adapts a pgx transaction to usecase.Transaction.
type Tx struct {
	inner pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error   { return t.inner.Commit(ctx) }
func (t *Tx) Rollback(ctx context.Context) error { return t.inner.Rollback(ctx) }

// PgxTx exposes the underlying transaction for query execution.
func (t *Tx) PgxTx() pgx.Tx { return t.inner }
