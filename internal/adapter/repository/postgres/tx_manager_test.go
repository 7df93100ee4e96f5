package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	t.Cleanup(func() {
		if err := pool.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet pool expectations: %v", err)
		}
	})

	return pool
}

func TestTxManagerCommit(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectBegin()
	pool.ExpectCommit()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
}

func TestTxManagerRollback(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectBegin()
	pool.ExpectRollback()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
}

func TestTxManagerPropagatesBeginError(t *testing.T) {
	pool := newMockPool(t)
	beginErr := errors.New("pool exhausted")
	pool.ExpectBegin().WillReturnError(beginErr)

	if _, err := newTxManagerWithPool(pool).Begin(context.Background()); !errors.Is(err, beginErr) {
		t.Fatalf("expected begin error, got %v", err)
	}
}

func TestTxExposesUnderlyingPgxTx(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectBegin()
	pool.ExpectRollback()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer tx.Rollback(context.Background())

	wrapped, ok := tx.(*Tx)
	if !ok {
		t.Fatalf("expected *Tx, got %T", tx)
	}
	if wrapped.PgxTx() == nil {
		t.Fatal("expected access to the raw transaction")
	}
}
