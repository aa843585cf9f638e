package teams

import "github.com/joelcondh/burien-soccer/internal/models"

// Counts tallies reservations per team.
func Counts(reservations []models.Reservation) map[string]int {
	counts := make(map[string]int, len(reservations))
	for _, r := range reservations {
		counts[r.Team]++
	}
	return counts
}

// Next picks the team the next reserving player should join: the open team
// with the strictly smallest occupancy, ties broken by earliest position in
// the open-team ordering.
func Next(reservations []models.Reservation, open []string) (string, error) {
	if len(open) == 0 {
		return "", ErrNoOpenTeams
	}

	counts := Counts(reservations)
	best := open[0]
	bestCount := counts[best]
	for _, team := range open[1:] {
		if counts[team] < bestCount {
			best = team
			bestCount = counts[team]
		}
	}
	return best, nil
}
