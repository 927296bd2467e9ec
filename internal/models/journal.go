package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Pending  EntryStatus = "PENDING"
	Approved EntryStatus = "APPROVED"
	Rejected EntryStatus = "REJECTED"
)

// JournalEntry represents a journal entry header row as persisted.
type JournalEntry struct {
	EntryID         int64       `db:"entry_id"`
	EntryDate       time.Time   `db:"entry_date"`
	Description     string      `db:"description"`
	Status          EntryStatus `db:"status"`
	ReviewedBy      *string     `db:"reviewed_by"`
	ReviewedAt      *time.Time  `db:"reviewed_at"`
	RejectionReason *string     `db:"rejection_reason"`
	AuditFields
}

// JournalLine represents a journal line row as persisted.
type JournalLine struct {
	LineID      int64           `db:"line_id"`
	EntryID     int64           `db:"entry_id"`
	AccountID   int64           `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	LineOrder   int             `db:"line_order"`
}
