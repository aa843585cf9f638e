package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/joelcondh/burien-soccer/internal/models"
	"github.com/joelcondh/burien-soccer/internal/outbox"
	_ "github.com/joelcondh/burien-soccer/migrations"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, "."))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func insertAccount(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	accountID := uuid.New()

	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (id, email, password_hash) VALUES ($1, $2, $3)`,
		accountID, fmt.Sprintf("%s-%s@example.com", name, accountID), "hash")
	require.NoError(t, err)

	_, err = pool.Exec(ctx,
		`INSERT INTO profiles (id, account_id, name, email, state, role)
		 VALUES ($1, $2, $3, $4, 'active', 'player')`,
		uuid.New(), accountID, name, fmt.Sprintf("%s-%s@example.com", name, accountID))
	require.NoError(t, err)

	return accountID
}

func TestRepository_InsertAndList(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	var want []uuid.UUID
	for i := 0; i < 3; i++ {
		accountID := insertAccount(t, pool, fmt.Sprintf("player%d", i))
		res := models.Reservation{
			ID:         uuid.New(),
			AccountID:  accountID,
			PlayerName: fmt.Sprintf("player%d", i),
			Team:       "Red",
			ReservedAt: base.Add(time.Duration(i) * time.Minute),
		}
		want = append(want, res.ID)

		err := repo.Atomic(ctx, func(s TxStore) error {
			_, err := s.InsertReservation(ctx, res)
			return err
		})
		require.NoError(t, err)
	}

	listed, err := repo.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// reserved_at ascending
	for i, res := range listed {
		require.Equal(t, want[i], res.ID)
	}
}

func TestRepository_GetReservationByAccount(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	accountID := insertAccount(t, pool, "marta")
	res := models.Reservation{
		ID:         uuid.New(),
		AccountID:  accountID,
		PlayerName: "marta",
		Team:       "Blue",
		ReservedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	err := repo.Atomic(ctx, func(s TxStore) error {
		_, err := s.InsertReservation(ctx, res)
		return err
	})
	require.NoError(t, err)

	got, err := repo.GetReservationByAccount(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, res.ID, got.ID)
	require.Equal(t, "Blue", got.Team)

	missing, err := repo.GetReservationByAccount(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	accountID := insertAccount(t, pool, "marta")
	res := models.Reservation{
		ID:         uuid.New(),
		AccountID:  accountID,
		PlayerName: "marta",
		Team:       "Red",
		ReservedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	err := repo.Atomic(ctx, func(s TxStore) error {
		if _, err := s.InsertReservation(ctx, res); err != nil {
			return err
		}
		return s.UpdateReservationTeam(ctx, res.ID, "Green")
	})
	require.NoError(t, err)

	got, err := repo.GetReservationByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, "Green", got.Team)

	err = repo.Atomic(ctx, func(s TxStore) error {
		return s.DeleteReservation(ctx, res.ID)
	})
	require.NoError(t, err)

	got, err = repo.GetReservationByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRepository_AtomicRollsBackEverything(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	ctx := context.Background()

	accountID := insertAccount(t, pool, "marta")
	res := models.Reservation{
		ID:         uuid.New(),
		AccountID:  accountID,
		PlayerName: "marta",
		Team:       "Red",
		ReservedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	boom := errors.New("boom")
	err := repo.Atomic(ctx, func(s TxStore) error {
		if _, err := s.InsertReservation(ctx, res); err != nil {
			return err
		}
		ev, err := outbox.NewReservationEvent(outbox.KindInsert, res, res.ReservedAt)
		if err != nil {
			return err
		}
		if err := s.AppendEvent(ctx, ev); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetReservationByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Nil(t, got)

	events, err := outboxRepo.GetUnsentEvents(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestRepository_AppendEventVisibleToOutbox(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	ctx := context.Background()

	accountID := insertAccount(t, pool, "marta")
	res := models.Reservation{
		ID:         uuid.New(),
		AccountID:  accountID,
		PlayerName: "marta",
		Team:       "Red",
		ReservedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	ev, err := outbox.NewReservationEvent(outbox.KindInsert, res, res.ReservedAt)
	require.NoError(t, err)

	err = repo.Atomic(ctx, func(s TxStore) error {
		if _, err := s.InsertReservation(ctx, res); err != nil {
			return err
		}
		return s.AppendEvent(ctx, ev)
	})
	require.NoError(t, err)

	events, err := outboxRepo.GetUnsentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, ev.ID, events[0].ID)
	require.Equal(t, outbox.KindInsert, events[0].Kind)
	require.Nil(t, events[0].SentAt)

	sentAt := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, outboxRepo.MarkEventSent(ctx, ev.ID, sentAt))

	events, err = outboxRepo.GetUnsentEvents(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, events)
}
