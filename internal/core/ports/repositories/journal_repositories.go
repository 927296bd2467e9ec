package repositories

import (
	"context"
	"time"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific entry, with its lines, by ID.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves entries newest-first, optionally filtered by
	// status. A nil status returns all entries.
	ListEntries(ctx context.Context, status *domain.EntryStatus, limit, offset int) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists a new PENDING entry with its lines and returns it
	// with assigned IDs.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// ReplaceEntry atomically rewrites a PENDING entry's header and line set.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes a PENDING entry and its lines.
	DeleteEntry(ctx context.Context, entryID int64) error

	// ApproveEntry posts an entry inside a single transaction: it locks the
	// entry row, requires PENDING, locks the touched accounts and requires
	// them active, computes the balance deltas from the locked rows' normal
	// sides, applies them, flips the status and stamps the reviewer. Any
	// failure rolls the whole transaction back and the entry stays PENDING.
	ApproveEntry(ctx context.Context, entryID int64, reviewedBy string, reviewedAt time.Time) error

	// RejectEntry marks a PENDING entry rejected with a reason, under the
	// same row-lock guard as ApproveEntry. No balances change.
	RejectEntry(ctx context.Context, entryID int64, reason string, reviewedBy string, reviewedAt time.Time) error
}

// LedgerLineReader defines read operations for the ledger projection
type LedgerLineReader interface {
	// ListApprovedLinesByAccount retrieves the approved lines touching an
	// account in (entry_date, entry_id) order, optionally date-windowed.
	ListApprovedLinesByAccount(ctx context.Context, accountID int64, from, to *time.Time) ([]domain.LedgerLine, error)

	// SumApprovedMovementBefore returns the account's approved debit and
	// credit totals strictly before the given date, for opening balances.
	SumApprovedMovementBefore(ctx context.Context, accountID int64, before time.Time) (debits, credits decimal.Decimal, err error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	LedgerLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
