package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/flowcounts/backend/internal/core/domain"
	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/google/uuid"
)

// eventDispatcher is an in-process, synchronous domain event fan-out.
// Subscriber errors are logged and swallowed: an approval must not fail
// because a listener did.
type eventDispatcher struct {
	BaseService
	mu          sync.RWMutex
	subscribers map[domain.EventKind][]portssvc.EventSubscriber
}

// NewEventDispatcher creates an empty dispatcher.
func NewEventDispatcher() portssvc.EventPublisher {
	return &eventDispatcher{
		subscribers: make(map[domain.EventKind][]portssvc.EventSubscriber),
	}
}

// Ensure eventDispatcher implements the EventPublisher interface
var _ portssvc.EventPublisher = (*eventDispatcher)(nil)

// Subscribe registers a subscriber for a specific event kind.
func (d *eventDispatcher) Subscribe(kind domain.EventKind, subscriber portssvc.EventSubscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers[kind] = append(d.subscribers[kind], subscriber)
}

// Publish delivers the event to every subscriber of its kind, assigning the
// event ID if the emitter left it empty.
func (d *eventDispatcher) Publish(ctx context.Context, event domain.Event) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	d.mu.RLock()
	subs := d.subscribers[event.Kind]
	d.mu.RUnlock()

	for _, sub := range subs {
		if err := sub(ctx, event); err != nil {
			d.LogError(ctx, err, "Event subscriber failed",
				slog.String("event_id", event.EventID),
				slog.String("kind", string(event.Kind)))
		}
	}
}
