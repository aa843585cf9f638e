package gateway

import (
	"encoding/json"
	"time"

	"github.com/joelcondh/burien-soccer/internal/outbox"
)

// RosterEvent is what connected clients receive when the reservation table
// changes. Data carries the full reservation record.
type RosterEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType names a roster change from the client's point of view.
type EventType string

const (
	EventTypeReservationCreated    EventType = "ReservationCreated"
	EventTypeReservationReassigned EventType = "ReservationReassigned"
	EventTypeReservationCanceled   EventType = "ReservationCanceled"
)

// eventTypeForKind maps outbox kinds onto client-facing event types.
func eventTypeForKind(kind outbox.Kind) (EventType, bool) {
	switch kind {
	case outbox.KindInsert:
		return EventTypeReservationCreated, true
	case outbox.KindUpdate:
		return EventTypeReservationReassigned, true
	case outbox.KindDelete:
		return EventTypeReservationCanceled, true
	default:
		return "", false
	}
}
