package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateRosterOutbox, downCreateRosterOutbox)
}

func upCreateRosterOutbox(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS roster_outbox (
		id UUID PRIMARY KEY,
		kind TEXT NOT NULL CHECK (kind IN ('insert', 'update', 'delete')),
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		sent_at TIMESTAMPTZ
	);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_roster_outbox_unsent
		ON roster_outbox(created_at) WHERE sent_at IS NULL;
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE OR REPLACE FUNCTION notify_roster_outbox() RETURNS trigger AS $$
	BEGIN
		PERFORM pg_notify('roster_outbox_events', NEW.id::text);
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TRIGGER roster_outbox_notify
	AFTER INSERT ON roster_outbox
	FOR EACH ROW EXECUTE FUNCTION notify_roster_outbox();
	`)
	return err
}

func downCreateRosterOutbox(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP TRIGGER IF EXISTS roster_outbox_notify ON roster_outbox;
	`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		DROP FUNCTION IF EXISTS notify_roster_outbox();
	`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		DROP TABLE IF EXISTS roster_outbox CASCADE;
	`)
	return err
}
