package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateReservations, downCreateReservations)
}

func upCreateReservations(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
		player_name TEXT NOT NULL,
		team TEXT NOT NULL,
		reserved_at TIMESTAMPTZ NOT NULL
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_reservations_reserved_at ON reservations(reserved_at);
	`)
	return err
}

func downCreateReservations(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP TABLE IF EXISTS reservations CASCADE;
	`)
	return err
}
