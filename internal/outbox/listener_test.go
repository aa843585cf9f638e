package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

type flakyPublisher struct {
	failures int
	calls    int
}

func (p *flakyPublisher) Publish(ctx context.Context, event Event) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("nats unavailable")
	}
	return nil
}

func retryListener(pub Publisher) *Listener {
	cfg := DefaultListenerConfig()
	cfg.MaxRetries = 3
	cfg.RetryDelay = time.Millisecond
	return &Listener{
		publisher: pub,
		clock:     clockwork.NewRealClock(),
		cfg:       cfg,
	}
}

func TestPublishWithRetryRecovers(t *testing.T) {
	pub := &flakyPublisher{failures: 2}
	l := retryListener(pub)

	err := l.publishWithRetry(context.Background(), Event{ID: uuid.New()})
	require.NoError(t, err)
	require.Equal(t, 3, pub.calls)
}

func TestPublishWithRetryGivesUp(t *testing.T) {
	pub := &flakyPublisher{failures: 100}
	l := retryListener(pub)

	err := l.publishWithRetry(context.Background(), Event{ID: uuid.New()})
	require.Error(t, err)
	require.Equal(t, 4, pub.calls)
}

func TestPublishWithRetryHonorsContext(t *testing.T) {
	pub := &flakyPublisher{failures: 100}
	l := retryListener(pub)
	l.cfg.RetryDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.publishWithRetry(ctx, Event{ID: uuid.New()})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, pub.calls)
}
