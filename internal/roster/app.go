package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/joelcondh/burien-soccer/internal/models"
	"github.com/joelcondh/burien-soccer/internal/outbox"
	"github.com/joelcondh/burien-soccer/internal/profile"
	"github.com/joelcondh/burien-soccer/internal/teams"
)

// TxStore is the view of the reservation table inside the cycle-locked
// transaction. ListReservations returns rows ordered by reserved_at ascending.
type TxStore interface {
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	GetReservationByAccount(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error)
	InsertReservation(ctx context.Context, res models.Reservation) (*models.Reservation, error)
	UpdateReservationTeam(ctx context.Context, id uuid.UUID, team string) error
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	AppendEvent(ctx context.Context, ev outbox.Event) error
}

// Store defines what the app layer needs from the reservation repository.
// Atomic runs fn inside one transaction holding the per-cycle lock, so the
// read-decide-write sequence of a reservation cannot interleave with another.
type Store interface {
	Atomic(ctx context.Context, fn func(TxStore) error) error
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	GetReservationByAccount(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error)
}

// ProfileGetter defines what the app layer needs from the profile domain.
type ProfileGetter interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*models.Profile, error)
}

// App handles the reservation lifecycle and drives the team assignment engine.
type App struct {
	store    Store
	profiles ProfileGetter
	teams    teams.Config
	clock    clockwork.Clock
}

func NewApp(store Store, profiles ProfileGetter, cfg teams.Config, clock clockwork.Clock) *App {
	return &App{
		store:    store,
		profiles: profiles,
		teams:    cfg,
		clock:    clock,
	}
}

// Reserve claims a spot for the account and assigns a team. Reserving twice
// is an idempotent no-op returning the existing reservation. When the insert
// makes the roster reach a capacity threshold, every seated player is first
// redistributed round-robin across the newly open teams, inside the same
// transaction as the insert, so a failure can never leave a partial rebalance
// behind.
func (a *App) Reserve(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error) {
	prof, err := a.profiles.GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if prof.State != models.ProfileStateActive {
		return nil, ErrProfileInactive
	}

	var out *models.Reservation
	err = a.store.Atomic(ctx, func(s TxStore) error {
		existing, err := s.GetReservationByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}

		current, err := s.ListReservations(ctx)
		if err != nil {
			return err
		}

		total := len(current) + 1
		open := teams.Open(a.teams, total)
		if len(open) > len(teams.Open(a.teams, len(current))) {
			if err := a.rebalance(ctx, s, current, open); err != nil {
				return err
			}
		}

		team, err := teams.Next(current, open)
		if err != nil {
			return err
		}

		now := a.clock.Now().UTC()
		created, err := s.InsertReservation(ctx, models.Reservation{
			ID:         uuid.New(),
			AccountID:  accountID,
			PlayerName: prof.Name,
			Team:       team,
			ReservedAt: now,
		})
		if err != nil {
			return err
		}

		ev, err := outbox.NewReservationEvent(outbox.KindInsert, *created, now)
		if err != nil {
			return err
		}
		if err := s.AppendEvent(ctx, ev); err != nil {
			return err
		}

		out = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reserve spot: %w", err)
	}

	log.Info().
		Str("account_id", accountID.String()).
		Str("team", out.Team).
		Msg("reservation settled")
	return out, nil
}

// rebalance rewrites every existing assignment round-robin over the open
// teams, in timestamp order, and records an update event per changed row.
// Mutates current in place so the caller assigns the newcomer against
// post-rebalance counts.
func (a *App) rebalance(ctx context.Context, s TxStore, current []models.Reservation, open []string) error {
	plan, err := teams.Rebalance(current, open)
	if err != nil {
		return err
	}

	now := a.clock.Now().UTC()
	for i, asg := range plan {
		if err := s.UpdateReservationTeam(ctx, asg.ReservationID, asg.Team); err != nil {
			return fmt.Errorf("failed to reassign reservation %s: %w", asg.ReservationID, err)
		}
		if current[i].Team == asg.Team {
			continue
		}
		current[i].Team = asg.Team

		ev, err := outbox.NewReservationEvent(outbox.KindUpdate, current[i], now)
		if err != nil {
			return err
		}
		if err := s.AppendEvent(ctx, ev); err != nil {
			return err
		}
	}

	log.Info().
		Int("players", len(plan)).
		Int("open_teams", len(open)).
		Msg("roster redistributed")
	return nil
}

// Cancel removes the account's reservation. Cancelling with no reservation is
// a no-op. Remaining players keep their teams; shrinking never rebalances.
func (a *App) Cancel(ctx context.Context, accountID uuid.UUID) error {
	err := a.store.Atomic(ctx, func(s TxStore) error {
		existing, err := s.GetReservationByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}

		if err := s.DeleteReservation(ctx, existing.ID); err != nil {
			return err
		}

		ev, err := outbox.NewReservationEvent(outbox.KindDelete, *existing, a.clock.Now().UTC())
		if err != nil {
			return err
		}
		return s.AppendEvent(ctx, ev)
	})
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	log.Info().Str("account_id", accountID.String()).Msg("reservation cancelled")
	return nil
}

// Roster returns all reservations ordered by reservation time.
func (a *App) Roster(ctx context.Context) ([]models.Reservation, error) {
	reservations, err := a.store.ListReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// ReservationFor returns the account's reservation, or nil when it has none.
func (a *App) ReservationFor(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error) {
	res, err := a.store.GetReservationByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}
