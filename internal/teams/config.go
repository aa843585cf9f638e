package teams

import "fmt"

// Threshold opens additional teams once the roster reaches MinPlayers.
type Threshold struct {
	MinPlayers int `yaml:"min_players"`
	TeamCount  int `yaml:"team_count"`
}

// Config describes the fixed, ordered team catalog and when each team opens.
// Teams are not persisted; they exist only as configuration.
type Config struct {
	Names      []string    `yaml:"names"`
	BaseOpen   int         `yaml:"base_open"`
	Thresholds []Threshold `yaml:"thresholds"`
}

// DefaultConfig returns the standard four-team setup: two teams open from the
// first player, a third at 12 and a fourth at 24. The thresholds are round
// squad sizes so each newly opened team starts filling from zero.
func DefaultConfig() Config {
	return Config{
		Names:    []string{"Red", "Blue", "Green", "Orange"},
		BaseOpen: 2,
		Thresholds: []Threshold{
			{MinPlayers: 12, TeamCount: 3},
			{MinPlayers: 24, TeamCount: 4},
		},
	}
}

// Validate checks that the catalog is usable: at least one base team, team
// counts covered by names, and thresholds strictly increasing on both axes so
// availability stays monotonic in roster size.
func (c Config) Validate() error {
	if len(c.Names) == 0 {
		return fmt.Errorf("team names are required")
	}
	if c.BaseOpen < 1 {
		return fmt.Errorf("at least one base team must be open, got %d", c.BaseOpen)
	}
	if c.BaseOpen > len(c.Names) {
		return fmt.Errorf("base_open %d exceeds %d configured team names", c.BaseOpen, len(c.Names))
	}
	prevMin, prevCount := 0, c.BaseOpen
	for i, t := range c.Thresholds {
		if t.MinPlayers <= prevMin {
			return fmt.Errorf("threshold %d: min_players %d must exceed previous %d", i, t.MinPlayers, prevMin)
		}
		if t.TeamCount <= prevCount {
			return fmt.Errorf("threshold %d: team_count %d must exceed previous %d", i, t.TeamCount, prevCount)
		}
		if t.TeamCount > len(c.Names) {
			return fmt.Errorf("threshold %d: team_count %d exceeds %d configured team names", i, t.TeamCount, len(c.Names))
		}
		prevMin, prevCount = t.MinPlayers, t.TeamCount
	}
	return nil
}
