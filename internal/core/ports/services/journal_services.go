package services

import (
	"context"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entry data
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry, with its lines, by ID.
	GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves entries newest-first, optionally status-filtered.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
}

// JournalEntryWriterSvc defines the approval-workflow operations on entries
type JournalEntryWriterSvc interface {
	// SubmitEntry validates and persists a new PENDING entry.
	SubmitEntry(ctx context.Context, req dto.CreateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)

	// EditEntry re-validates and rewrites a PENDING entry. Decided entries
	// cannot be edited.
	EditEntry(ctx context.Context, entryID int64, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)

	// DeleteEntry removes a PENDING entry. Decided entries are permanent.
	DeleteEntry(ctx context.Context, entryID int64, actor domain.Actor) error

	// ApproveEntry atomically posts a PENDING entry to account balances and
	// marks it APPROVED. MANAGER or ADMIN only.
	ApproveEntry(ctx context.Context, entryID int64, actor domain.Actor) (*domain.JournalEntry, error)

	// RejectEntry marks a PENDING entry REJECTED with a mandatory reason.
	// MANAGER or ADMIN only. No balances change.
	RejectEntry(ctx context.Context, entryID int64, req dto.RejectEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
}
