package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is an authentication identity. The password hash never leaves the
// storage layer.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the player-facing identity linked to an account.
type Profile struct {
	ID        uuid.UUID    `json:"id"`
	AccountID uuid.UUID    `json:"account_id"`
	Name      string       `json:"name"`
	City      *string      `json:"city,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Email     string       `json:"email"`
	State     ProfileState `json:"state"`
	Role      ProfileRole  `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

// ProfileState controls whether the player may reserve a spot.
type ProfileState string

const (
	ProfileStateActive   ProfileState = "active"
	ProfileStateInactive ProfileState = "inactive"
)

// ProfileRole separates regular players from administrators.
type ProfileRole string

const (
	ProfileRolePlayer ProfileRole = "player"
	ProfileRoleAdmin  ProfileRole = "admin"
)
