package roster

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/joelcondh/burien-soccer/internal/models"
	"github.com/joelcondh/burien-soccer/internal/outbox"
	"github.com/joelcondh/burien-soccer/internal/profile"
	"github.com/joelcondh/burien-soccer/internal/teams"
)

// fakeStore keeps reservations in insertion order, which matches the
// reserved_at ascending ordering the repository guarantees.
type fakeStore struct {
	reservations []models.Reservation
	events       []outbox.Event
}

func (f *fakeStore) Atomic(ctx context.Context, fn func(TxStore) error) error {
	return fn(f)
}

func (f *fakeStore) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	out := make([]models.Reservation, len(f.reservations))
	copy(out, f.reservations)
	return out, nil
}

func (f *fakeStore) GetReservationByAccount(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error) {
	for _, r := range f.reservations {
		if r.AccountID == accountID {
			res := r
			return &res, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertReservation(ctx context.Context, res models.Reservation) (*models.Reservation, error) {
	f.reservations = append(f.reservations, res)
	return &res, nil
}

func (f *fakeStore) UpdateReservationTeam(ctx context.Context, id uuid.UUID, team string) error {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations[i].Team = team
			return nil
		}
	}
	return nil
}

func (f *fakeStore) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) AppendEvent(ctx context.Context, ev outbox.Event) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeStore) eventsOfKind(kind outbox.Kind) []outbox.Event {
	var out []outbox.Event
	for _, ev := range f.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

type fakeProfiles struct {
	profiles map[uuid.UUID]*models.Profile
}

func (f *fakeProfiles) GetByAccount(ctx context.Context, accountID uuid.UUID) (*models.Profile, error) {
	p, ok := f.profiles[accountID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return p, nil
}

func newTestApp(t *testing.T) (*App, *fakeStore, *fakeProfiles, *clockwork.FakeClock) {
	t.Helper()
	store := &fakeStore{}
	profiles := &fakeProfiles{profiles: make(map[uuid.UUID]*models.Profile)}
	clock := clockwork.NewFakeClock()
	return NewApp(store, profiles, teams.DefaultConfig(), clock), store, profiles, clock
}

func addPlayer(profiles *fakeProfiles, name string) uuid.UUID {
	accountID := uuid.New()
	profiles.profiles[accountID] = &models.Profile{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      name,
		State:     models.ProfileStateActive,
		Role:      models.ProfileRolePlayer,
	}
	return accountID
}

// reserveN seats n fresh players one at a time, advancing the clock between
// inserts so reservation timestamps stay strictly ordered.
func reserveN(t *testing.T, app *App, profiles *fakeProfiles, clock *clockwork.FakeClock, n int) []uuid.UUID {
	t.Helper()
	accounts := make([]uuid.UUID, n)
	for i := range accounts {
		accounts[i] = addPlayer(profiles, "Player")
		_, err := app.Reserve(context.Background(), accounts[i])
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}
	return accounts
}

func teamCounts(reservations []models.Reservation) map[string]int {
	counts := make(map[string]int)
	for _, r := range reservations {
		counts[r.Team]++
	}
	return counts
}

func TestReserveFirstPlayer(t *testing.T) {
	app, store, profiles, _ := newTestApp(t)
	accountID := addPlayer(profiles, "Marta")

	res, err := app.Reserve(context.Background(), accountID)
	require.NoError(t, err)

	require.Equal(t, "Red", res.Team)
	require.Equal(t, accountID, res.AccountID)
	require.Equal(t, "Marta", res.PlayerName)

	require.Len(t, store.events, 1)
	require.Equal(t, outbox.KindInsert, store.events[0].Kind)
}

func TestReserveAlternatesBaseTeams(t *testing.T) {
	app, store, profiles, clock := newTestApp(t)
	reserveN(t, app, profiles, clock, 6)

	counts := teamCounts(store.reservations)
	require.Equal(t, map[string]int{"Red": 3, "Blue": 3}, counts)
}

func TestReserveIdempotent(t *testing.T) {
	app, store, profiles, _ := newTestApp(t)
	accountID := addPlayer(profiles, "Marta")

	first, err := app.Reserve(context.Background(), accountID)
	require.NoError(t, err)

	second, err := app.Reserve(context.Background(), accountID)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.Team, second.Team)
	require.Len(t, store.reservations, 1)
	require.Len(t, store.events, 1)
}

func TestReserveInactiveProfile(t *testing.T) {
	app, store, profiles, _ := newTestApp(t)
	accountID := addPlayer(profiles, "Marta")
	profiles.profiles[accountID].State = models.ProfileStateInactive

	_, err := app.Reserve(context.Background(), accountID)
	require.ErrorIs(t, err, ErrProfileInactive)
	require.Empty(t, store.reservations)
}

func TestReserveUnknownAccount(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	_, err := app.Reserve(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestReserveTwelfthPlayerRedistributes(t *testing.T) {
	app, store, profiles, clock := newTestApp(t)
	reserveN(t, app, profiles, clock, 11)

	// Eleven players fill the two base teams 6 and 5.
	require.Equal(t, map[string]int{"Red": 6, "Blue": 5}, teamCounts(store.reservations))

	newcomer := addPlayer(profiles, "Sofia")
	res, err := app.Reserve(context.Background(), newcomer)
	require.NoError(t, err)

	// The twelfth player opens the third team: the eleven seated players
	// spread 4/4/3 round-robin, leaving Green the short team for the newcomer.
	require.Equal(t, "Green", res.Team)
	require.Equal(t, map[string]int{"Red": 4, "Blue": 4, "Green": 4}, teamCounts(store.reservations))

	// Earliest reserver lands on the first team.
	require.Equal(t, "Red", store.reservations[0].Team)

	// Seven of the eleven seated players changed team; each change is an
	// update event, and the newcomer an insert.
	require.Len(t, store.eventsOfKind(outbox.KindUpdate), 7)
	require.Len(t, store.eventsOfKind(outbox.KindInsert), 12)
}

func TestReserveBelowThresholdDoesNotRedistribute(t *testing.T) {
	app, store, profiles, clock := newTestApp(t)
	reserveN(t, app, profiles, clock, 11)

	require.Empty(t, store.eventsOfKind(outbox.KindUpdate))
}

func TestReserveTwentyFourthPlayerOpensFourthTeam(t *testing.T) {
	app, store, profiles, clock := newTestApp(t)
	reserveN(t, app, profiles, clock, 24)

	require.Equal(t, map[string]int{"Red": 6, "Blue": 6, "Green": 6, "Orange": 6}, teamCounts(store.reservations))
}

func TestCancel(t *testing.T) {
	app, store, profiles, clock := newTestApp(t)
	accounts := reserveN(t, app, profiles, clock, 5)

	before := teamCounts(store.reservations)
	canceled, err := app.ReservationFor(context.Background(), accounts[2])
	require.NoError(t, err)
	before[canceled.Team]--

	require.NoError(t, app.Cancel(context.Background(), accounts[2]))

	require.Len(t, store.reservations, 4)
	require.Equal(t, before, teamCounts(store.reservations))

	deletes := store.eventsOfKind(outbox.KindDelete)
	require.Len(t, deletes, 1)

	// Shrinking never triggers redistribution.
	require.Empty(t, store.eventsOfKind(outbox.KindUpdate))
}

func TestCancelWithoutReservation(t *testing.T) {
	app, store, _, _ := newTestApp(t)

	require.NoError(t, app.Cancel(context.Background(), uuid.New()))
	require.Empty(t, store.events)
}

func TestDropBelowThresholdKeepsThreeTeams(t *testing.T) {
	app, store, profiles, clock := newTestApp(t)
	accounts := reserveN(t, app, profiles, clock, 12)

	require.NoError(t, app.Cancel(context.Background(), accounts[0]))

	// Eleven players remain on three teams; nobody moves, so the only
	// update events are the ones from the twelfth player opening Green.
	counts := teamCounts(store.reservations)
	require.Len(t, store.reservations, 11)
	require.Len(t, counts, 3)
	require.Len(t, store.eventsOfKind(outbox.KindUpdate), 7)
}

func TestRoster(t *testing.T) {
	app, _, profiles, clock := newTestApp(t)
	reserveN(t, app, profiles, clock, 3)

	roster, err := app.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 3)
}

func TestReservationForMissing(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	res, err := app.ReservationFor(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, res)
}
