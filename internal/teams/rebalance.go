package teams

import (
	"github.com/google/uuid"

	"github.com/joelcondh/burien-soccer/internal/models"
)

// Assignment maps one reservation to its rebalanced team.
type Assignment struct {
	ReservationID uuid.UUID
	Team          string
}

// Rebalance redistributes every seated player across the open teams in strict
// round-robin order, ignoring previous assignments. The input must be ordered
// by reservation timestamp ascending; the earliest reserver lands on the first
// open team, so early reservers spread evenly across newly opened teams
// instead of clustering in the original ones.
func Rebalance(reservations []models.Reservation, open []string) ([]Assignment, error) {
	if len(open) == 0 {
		return nil, ErrNoOpenTeams
	}

	assignments := make([]Assignment, len(reservations))
	for i, r := range reservations {
		assignments[i] = Assignment{
			ReservationID: r.ID,
			Team:          open[i%len(open)],
		}
	}
	return assignments, nil
}
