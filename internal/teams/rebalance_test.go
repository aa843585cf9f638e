package teams

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/joelcondh/burien-soccer/internal/models"
)

func TestRebalance(t *testing.T) {
	open := []string{"Red", "Blue", "Green"}

	reservations := make([]models.Reservation, 7)
	for i := range reservations {
		reservations[i] = models.Reservation{ID: uuid.New(), Team: "Red"}
	}

	assignments, err := Rebalance(reservations, open)
	require.NoError(t, err)
	require.Len(t, assignments, 7)

	for i, a := range assignments {
		require.Equal(t, reservations[i].ID, a.ReservationID)
		require.Equal(t, open[i%3], a.Team)
	}
}

func TestRebalanceEvenSpread(t *testing.T) {
	tests := []struct {
		name    string
		players int
		open    []string
		want    map[string]int
	}{
		{"twelve across three", 12, []string{"Red", "Blue", "Green"}, map[string]int{"Red": 4, "Blue": 4, "Green": 4}},
		{"eleven across three", 11, []string{"Red", "Blue", "Green"}, map[string]int{"Red": 4, "Blue": 4, "Green": 3}},
		{"twenty-four across four", 24, []string{"Red", "Blue", "Green", "Orange"}, map[string]int{"Red": 6, "Blue": 6, "Green": 6, "Orange": 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservations := make([]models.Reservation, tt.players)
			for i := range reservations {
				reservations[i] = models.Reservation{ID: uuid.New()}
			}

			assignments, err := Rebalance(reservations, tt.open)
			require.NoError(t, err)

			counts := make(map[string]int)
			for _, a := range assignments {
				counts[a.Team]++
			}
			require.Equal(t, tt.want, counts)
		})
	}
}

func TestRebalanceEarliestFirst(t *testing.T) {
	open := []string{"Red", "Blue", "Green"}

	first := models.Reservation{ID: uuid.New(), Team: "Blue"}
	second := models.Reservation{ID: uuid.New(), Team: "Blue"}

	assignments, err := Rebalance([]models.Reservation{first, second}, open)
	require.NoError(t, err)

	require.Equal(t, "Red", assignments[0].Team)
	require.Equal(t, "Blue", assignments[1].Team)
}

func TestRebalanceEmpty(t *testing.T) {
	assignments, err := Rebalance(nil, []string{"Red", "Blue"})
	require.NoError(t, err)
	require.Empty(t, assignments)
}

func TestRebalanceNoOpenTeams(t *testing.T) {
	_, err := Rebalance(seated("Red"), nil)
	require.ErrorIs(t, err, ErrNoOpenTeams)
}
