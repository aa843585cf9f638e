package sqlutil

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Run executes fn inside a pgx transaction.
// If fn returns an error the tx rolls back, else it commits.
func Run(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// RunLocked executes fn inside a transaction that holds a transaction-scoped
// advisory lock on key. Concurrent callers with the same key serialize at the
// lock, which is what makes a read-decide-write sequence over shared rows
// safe without table locks. The lock releases on commit or rollback.
func RunLocked(ctx context.Context, pool *pgxpool.Pool, key int64, fn func(tx pgx.Tx) error) error {
	return Run(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
			return err
		}
		return fn(tx)
	})
}
