package teams

// Open returns the ordered list of teams eligible to receive players at the
// given roster size. Availability is monotonic: a team, once opened, never
// closes within the same cycle, so the result only ever grows with playerCount.
func Open(cfg Config, playerCount int) []string {
	count := cfg.BaseOpen
	for _, t := range cfg.Thresholds {
		if playerCount >= t.MinPlayers && t.TeamCount > count {
			count = t.TeamCount
		}
	}
	return cfg.Names[:count]
}
