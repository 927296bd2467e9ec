package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDispatcher_FanOut(t *testing.T) {
	dispatcher := services.NewEventDispatcher()
	ctx := context.Background()

	var first, second []domain.Event
	dispatcher.Subscribe(domain.EventEntryApproved, func(_ context.Context, e domain.Event) error {
		first = append(first, e)
		return nil
	})
	dispatcher.Subscribe(domain.EventEntryApproved, func(_ context.Context, e domain.Event) error {
		second = append(second, e)
		return nil
	})
	dispatcher.Subscribe(domain.EventEntryRejected, func(_ context.Context, e domain.Event) error {
		t.Errorf("rejected subscriber should not receive %s", e.Kind)
		return nil
	})

	dispatcher.Publish(ctx, domain.Event{Kind: domain.EventEntryApproved, ActorID: "user-1"})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "user-1", first[0].ActorID)
}

func TestEventDispatcher_AssignsEventID(t *testing.T) {
	dispatcher := services.NewEventDispatcher()

	var got domain.Event
	dispatcher.Subscribe(domain.EventAccountCreated, func(_ context.Context, e domain.Event) error {
		got = e
		return nil
	})

	dispatcher.Publish(context.Background(), domain.Event{Kind: domain.EventAccountCreated})

	assert.NotEmpty(t, got.EventID)
}

func TestEventDispatcher_SubscriberErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := services.NewEventDispatcher()

	delivered := false
	dispatcher.Subscribe(domain.EventEntrySubmitted, func(context.Context, domain.Event) error {
		return errors.New("listener broke")
	})
	dispatcher.Subscribe(domain.EventEntrySubmitted, func(context.Context, domain.Event) error {
		delivered = true
		return nil
	})

	dispatcher.Publish(context.Background(), domain.Event{Kind: domain.EventEntrySubmitted})

	assert.True(t, delivered)
}

func TestEventDispatcher_NoSubscribersIsNoOp(t *testing.T) {
	dispatcher := services.NewEventDispatcher()
	dispatcher.Publish(context.Background(), domain.Event{Kind: domain.EventAccountActivated})
}
