package services

import (
	"context"

	"github.com/flowcounts/backend/internal/core/domain"
)

// EventSubscriber receives domain events. A subscriber error is logged by the
// publisher and never propagated to the operation that emitted the event.
type EventSubscriber func(ctx context.Context, event domain.Event) error

// EventPublisher defines the in-process domain event fan-out.
type EventPublisher interface {
	// Publish delivers the event to every subscriber of its kind.
	Publish(ctx context.Context, event domain.Event)

	// Subscribe registers a subscriber for a specific event kind.
	Subscribe(kind domain.EventKind, subscriber EventSubscriber)
}
