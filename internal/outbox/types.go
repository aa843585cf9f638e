package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joelcondh/burien-soccer/internal/models"
)

// Kind is the reservation-table change a row records.
type Kind string

const (
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Event is a roster change captured in the same transaction as the mutation
// it describes. The listener publishes unsent events and stamps SentAt.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// NewReservationEvent builds an outbox event carrying the full reservation
// record as payload.
func NewReservationEvent(kind Kind, res models.Reservation, at time.Time) (Event, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return Event{}, fmt.Errorf("marshal reservation payload: %w", err)
	}
	return Event{
		ID:        uuid.New(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: at,
	}, nil
}
