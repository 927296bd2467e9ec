package domain

import "time"

// EventKind names an in-process domain event.
type EventKind string

const (
	EventEntrySubmitted     EventKind = "entry.submitted"
	EventEntryApproved      EventKind = "entry.approved"
	EventEntryRejected      EventKind = "entry.rejected"
	EventAccountCreated     EventKind = "account.created"
	EventAccountDeactivated EventKind = "account.deactivated"
	EventAccountActivated   EventKind = "account.activated"
)

// Event is an immutable record of something that happened in the domain.
// Payload holds the affected aggregate (JournalEntry or Account).
type Event struct {
	EventID    string    `json:"eventID"`
	Kind       EventKind `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorID"`
	Payload    any       `json:"payload"`
}
