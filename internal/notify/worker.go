package notify

import (
	"context"
	"log/slog"
	"time"
)

// Worker consumes events from a channel and delivers them through a Notifier.
// Delivery is best-effort: a bounded number of retries, then the event is
// logged and dropped. The worker only stops when its context is cancelled.
type Worker struct {
	notifier Notifier
	inbox    <-chan Event
	logger   *slog.Logger
	retries  int
	backoff  time.Duration
}

// NewWorker wires a worker to an inbox. retries is the number of delivery
// attempts per event (minimum 1).
func NewWorker(notifier Notifier, inbox <-chan Event, logger *slog.Logger, retries int) *Worker {
	if retries < 1 {
		retries = 1
	}
	return &Worker{
		notifier: notifier,
		inbox:    inbox,
		logger:   logger,
		retries:  retries,
		backoff:  500 * time.Millisecond,
	}
}

// Run processes events until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event Event) {
	var lastErr error
	for attempt := 1; attempt <= w.retries; attempt++ {
		if err := w.notifier.Send(ctx, event.To, event.Subject, event.Body); err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.backoff * time.Duration(attempt)):
			}
			continue
		}
		w.logger.InfoContext(ctx, "notification delivered",
			"kind", event.Kind,
			"to", event.To,
			"attempts", attempt,
			"request_id", event.RequestID,
		)
		return
	}
	w.logger.WarnContext(ctx, "notification dropped after retries",
		"kind", event.Kind,
		"to", event.To,
		"attempts", w.retries,
		"request_id", event.RequestID,
		"error", lastErr,
	)
}
