// Package teams holds the team assignment engine: pure decision logic that
// computes which teams are open for a given roster size, picks a team for the
// next reserving player, and rebalances all seated players when the roster
// crosses a capacity threshold.
//
// Nothing in this package touches storage or goroutines; callers are expected
// to serialize the surrounding read-decide-write sequence themselves.
package teams
