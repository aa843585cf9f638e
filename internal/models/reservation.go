package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a claim on one of the weekly match spots. PlayerName is
// denormalized from the profile so the roster renders without a join.
// At most one reservation exists per account at any time.
type Reservation struct {
	ID         uuid.UUID `json:"id"`
	AccountID  uuid.UUID `json:"account_id"`
	PlayerName string    `json:"player_name"`
	Team       string    `json:"team"`
	ReservedAt time.Time `json:"reserved_at"`
}
