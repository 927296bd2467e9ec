package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry in the approval workflow.
type EntryStatus string

const (
	Pending  EntryStatus = "PENDING"
	Approved EntryStatus = "APPROVED"
	Rejected EntryStatus = "REJECTED"
)

// ValidEntryStatus reports whether s is a known entry status.
func ValidEntryStatus(s EntryStatus) bool {
	switch s {
	case Pending, Approved, Rejected:
		return true
	}
	return false
}

// IsDecided reports whether the status is terminal. Decided entries are
// immutable history and can never return to PENDING.
func (s EntryStatus) IsDecided() bool {
	return s == Approved || s == Rejected
}

// JournalEntry represents a single balanced financial event awaiting or past
// review, composed of two or more lines.
type JournalEntry struct {
	EntryID         int64         `json:"entryID"`     // Primary Key, monotonically increasing
	EntryDate       time.Time     `json:"entryDate"`   // Calendar date the event occurred
	Description     string        `json:"description"` // Nullable user description
	Status          EntryStatus   `json:"status"`      // PENDING on creation
	ReviewedBy      string        `json:"reviewedBy"`  // Actor who approved or rejected
	ReviewedAt      *time.Time    `json:"reviewedAt"`
	RejectionReason string        `json:"rejectionReason"` // Required iff REJECTED
	Lines           []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine represents a single line item within a journal entry, affecting
// one account on exactly one side.
type JournalLine struct {
	LineID      int64           `json:"lineID"`
	EntryID     int64           `json:"entryID"`
	AccountID   int64           `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`  // >= 0; exactly one of Debit/Credit is positive
	Credit      decimal.Decimal `json:"credit"` // >= 0
	Description string          `json:"description"` // Nullable
	LineOrder   int             `json:"lineOrder"`   // Display order, debits before credits
}

// IsDebit reports whether the line carries an amount on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// TotalDebits sums the debit side of the entry's lines.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry's lines.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
