package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAccountsAndProfiles, downCreateAccountsAndProfiles)
}

func upCreateAccountsAndProfiles(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		city TEXT,
		phone TEXT,
		email TEXT NOT NULL,
		state TEXT NOT NULL CHECK (state IN ('active', 'inactive')),
		role TEXT NOT NULL CHECK (role IN ('player', 'admin')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_profiles_account ON profiles(account_id);
	`)
	return err
}

func downCreateAccountsAndProfiles(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP TABLE IF EXISTS profiles CASCADE;
	`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		DROP TABLE IF EXISTS accounts CASCADE;
	`)
	return err
}
