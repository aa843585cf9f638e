package outbox

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repository reads and marks outbox rows for the listener. Rows are written
// by the roster repository inside the mutating transaction, never here.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	query := psql.
		Select("id", "kind", "payload", "created_at", "sent_at").
		From("roster_outbox").
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var ev Event
	if err := r.pool.QueryRow(ctx, sql, args...).
		Scan(&ev.ID, &ev.Kind, &ev.Payload, &ev.CreatedAt, &ev.SentAt); err != nil {
		return nil, fmt.Errorf("get outbox event: %w", err)
	}
	return &ev, nil
}

// GetUnsentEvents returns up to limit unpublished events, oldest first.
func (r *Repository) GetUnsentEvents(ctx context.Context, limit int32) ([]Event, error) {
	query := psql.
		Select("id", "kind", "payload", "created_at", "sent_at").
		From("roster_outbox").
		Where(sq.Eq{"sent_at": nil}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.Payload, &ev.CreatedAt, &ev.SentAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *Repository) MarkEventSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := psql.
		Update("roster_outbox").
		Set("sent_at", at).
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("mark outbox event sent: %w", err)
	}
	return nil
}
