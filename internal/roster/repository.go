package roster

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joelcondh/burien-soccer/internal/models"
	"github.com/joelcondh/burien-soccer/internal/outbox"
	"github.com/joelcondh/burien-soccer/internal/sqlutil"
)

// reservationCycleLock keys the advisory lock serializing reservation writes.
// There is exactly one weekly cycle, so one constant key suffices.
const reservationCycleLock int64 = 7911

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var reservationColumns = []string{"id", "account_id", "player_name", "team", "reserved_at"}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository persists reservations in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// Atomic runs fn inside one transaction holding the cycle advisory lock.
// Everything fn writes, reservation rows and outbox events alike, commits or
// rolls back together.
func (r *Repository) Atomic(ctx context.Context, fn func(TxStore) error) error {
	return sqlutil.RunLocked(ctx, r.pool, reservationCycleLock, func(tx pgx.Tx) error {
		return fn(&txStore{q: tx})
	})
}

func (r *Repository) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return listReservations(ctx, r.pool)
}

func (r *Repository) GetReservationByAccount(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error) {
	return getReservationByAccount(ctx, r.pool, accountID)
}

// txStore implements TxStore over the transaction held by Atomic.
type txStore struct {
	q pgx.Tx
}

func (s *txStore) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return listReservations(ctx, s.q)
}

func (s *txStore) GetReservationByAccount(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error) {
	return getReservationByAccount(ctx, s.q, accountID)
}

func (s *txStore) InsertReservation(ctx context.Context, res models.Reservation) (*models.Reservation, error) {
	query := psql.
		Insert("reservations").
		Columns(reservationColumns...).
		Values(res.ID, res.AccountID, res.PlayerName, res.Team, res.ReservedAt).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanReservation(s.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return created, nil
}

func (s *txStore) UpdateReservationTeam(ctx context.Context, id uuid.UUID, team string) error {
	query := psql.
		Update("reservations").
		Set("team", team).
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update reservation team: %w", err)
	}
	return nil
}

func (s *txStore) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	query := psql.
		Delete("reservations").
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

// AppendEvent writes an outbox row in the surrounding transaction. A trigger
// on roster_outbox fires pg_notify on commit, waking the listener.
func (s *txStore) AppendEvent(ctx context.Context, ev outbox.Event) error {
	query := psql.
		Insert("roster_outbox").
		Columns("id", "kind", "payload", "created_at").
		Values(ev.ID, ev.Kind, ev.Payload, ev.CreatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to append outbox event: %w", err)
	}
	return nil
}

func listReservations(ctx context.Context, q querier) ([]models.Reservation, error) {
	query := psql.
		Select(reservationColumns...).
		From("reservations").
		OrderBy("reserved_at ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(&res.ID, &res.AccountID, &res.PlayerName, &res.Team, &res.ReservedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func getReservationByAccount(ctx context.Context, q querier, accountID uuid.UUID) (*models.Reservation, error) {
	query := psql.
		Select(reservationColumns...).
		From("reservations").
		Where(sq.Eq{"account_id": accountID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	res, err := scanReservation(q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation by account: %w", err)
	}
	return res, nil
}

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var res models.Reservation
	if err := row.Scan(&res.ID, &res.AccountID, &res.PlayerName, &res.Team, &res.ReservedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

func columnList() string {
	list := reservationColumns[0]
	for _, c := range reservationColumns[1:] {
		list += ", " + c
	}
	return list
}
