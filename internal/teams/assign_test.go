package teams

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/joelcondh/burien-soccer/internal/models"
)

func seated(teams ...string) []models.Reservation {
	out := make([]models.Reservation, len(teams))
	for i, team := range teams {
		out[i] = models.Reservation{ID: uuid.New(), Team: team}
	}
	return out
}

func TestCounts(t *testing.T) {
	counts := Counts(seated("Red", "Blue", "Red", "Red"))

	require.Equal(t, 3, counts["Red"])
	require.Equal(t, 1, counts["Blue"])
	require.Equal(t, 0, counts["Green"])
}

func TestNext(t *testing.T) {
	open := []string{"Red", "Blue", "Green"}

	tests := []struct {
		name     string
		existing []models.Reservation
		want     string
	}{
		{"empty roster goes to first team", nil, "Red"},
		{"fills strictly smallest team", seated("Red", "Red", "Blue"), "Green"},
		{"all tied goes to earliest", seated("Red", "Blue", "Green"), "Red"},
		{"partial tie goes to earliest of tied", seated("Red", "Red", "Blue", "Green"), "Blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.existing, open)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNextNoOpenTeams(t *testing.T) {
	_, err := Next(nil, nil)
	require.ErrorIs(t, err, ErrNoOpenTeams)
}

func TestNextAlwaysPicksMinimum(t *testing.T) {
	open := []string{"Red", "Blue", "Green", "Orange"}

	var roster []models.Reservation
	for i := 0; i < 40; i++ {
		team, err := Next(roster, open)
		require.NoError(t, err)
		require.Contains(t, open, team)

		counts := Counts(roster)
		for _, other := range open {
			require.LessOrEqual(t, counts[team], counts[other],
				"pick %d joined %s over a smaller team", i, team)
		}

		roster = append(roster, models.Reservation{ID: uuid.New(), Team: team})
	}

	// Sequential fills over a fixed open set stay within one player of even.
	counts := Counts(roster)
	for _, team := range open {
		require.Equal(t, 10, counts[team])
	}
}
