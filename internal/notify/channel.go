package notify

import (
	"context"
	"fmt"
)

// ChannelPublisher hands events to an in-process Worker over a buffered
// channel. Emit never blocks: when the buffer is full the event is dropped
// and an error returned for the caller to log.
type ChannelPublisher struct {
	inbox chan Event
}

// NewChannelPublisher creates a publisher with the given buffer size.
func NewChannelPublisher(buffer int) *ChannelPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelPublisher{inbox: make(chan Event, buffer)}
}

// Emit enqueues the event for background delivery.
func (p *ChannelPublisher) Emit(ctx context.Context, event Event) error {
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("notification buffer full, event dropped: %s", event.Kind)
	}
}

// Inbox exposes the receive side for the Worker.
func (p *ChannelPublisher) Inbox() <-chan Event {
	return p.inbox
}
