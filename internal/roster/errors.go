package roster

import "errors"

// Sentinel errors surfaced by the reservation lifecycle.
var (
	// ErrProfileInactive is returned when an inactive profile attempts to
	// reserve. The caller surfaces it so the player can request activation
	// out-of-band; nothing is mutated.
	ErrProfileInactive = errors.New("profile is inactive")

	// ErrProfileNotFound is returned when no profile exists for the account.
	ErrProfileNotFound = errors.New("profile not found")
)
