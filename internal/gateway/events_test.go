package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joelcondh/burien-soccer/internal/outbox"
)

func TestEventTypeForKind(t *testing.T) {
	tests := []struct {
		kind outbox.Kind
		want EventType
		ok   bool
	}{
		{outbox.KindInsert, EventTypeReservationCreated, true},
		{outbox.KindUpdate, EventTypeReservationReassigned, true},
		{outbox.KindDelete, EventTypeReservationCanceled, true},
		{outbox.Kind("truncate"), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, ok := eventTypeForKind(tt.kind)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
