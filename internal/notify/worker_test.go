package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu        sync.Mutex
	failures  int
	delivered []string
	attempts  int
	done      chan struct{}
}

func (n *recordingNotifier) Send(_ context.Context, to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts++
	if n.failures > 0 {
		n.failures--
		return errors.New("smtp unavailable")
	}
	n.delivered = append(n.delivered, to)
	if n.done != nil {
		close(n.done)
		n.done = nil
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestWorkerDeliversEvent(t *testing.T) {
	notifier := &recordingNotifier{done: make(chan struct{})}
	publisher := NewChannelPublisher(8)
	worker := NewWorker(notifier, publisher.Inbox(), testLogger(), 3)
	worker.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	err := publisher.Emit(ctx, Event{
		Kind:    KindApplicationApproved,
		To:      "student@example.com",
		Subject: "Application Approved",
	})
	require.NoError(t, err)

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, []string{"student@example.com"}, notifier.delivered)
}

func TestWorkerRetriesThenDelivers(t *testing.T) {
	notifier := &recordingNotifier{failures: 2, done: make(chan struct{})}
	publisher := NewChannelPublisher(8)
	worker := NewWorker(notifier, publisher.Inbox(), testLogger(), 3)
	worker.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	require.NoError(t, publisher.Emit(ctx, Event{Kind: KindAdmissionPublished, To: "s1@example.com"}))

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered after retries")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, 3, notifier.attempts)
}

func TestWorkerDropsAfterExhaustedRetries(t *testing.T) {
	notifier := &recordingNotifier{failures: 10}
	publisher := NewChannelPublisher(8)
	worker := NewWorker(notifier, publisher.Inbox(), testLogger(), 2)
	worker.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	require.NoError(t, publisher.Emit(ctx, Event{Kind: KindJobMatch, To: "s2@example.com"}))

	// Give the worker time to exhaust both attempts.
	assert.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return notifier.attempts == 2
	}, 2*time.Second, 5*time.Millisecond)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Empty(t, notifier.delivered)
}

func TestChannelPublisherDropsWhenFull(t *testing.T) {
	publisher := NewChannelPublisher(1)
	ctx := context.Background()

	require.NoError(t, publisher.Emit(ctx, Event{To: "a@example.com"}))
	err := publisher.Emit(ctx, Event{To: "b@example.com"})
	assert.Error(t, err, "second emit should be dropped, not block")
}
