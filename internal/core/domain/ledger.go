package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one row of an account's ledger projection: an approved journal
// line paired with the running balance after applying it.
type LedgerLine struct {
	EntryID          int64           `json:"entryID"`
	EntryDate        time.Time       `json:"entryDate"`
	EntryDescription string          `json:"entryDescription"`
	LineDescription  string          `json:"lineDescription"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	RunningBalance   decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is the full projection for one account over an optional date
// window, replayed deterministically from the account's initial balance.
type AccountLedger struct {
	Account        Account         `json:"account"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Balance entering the window
	Lines          []LedgerLine    `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closingBalance"` // Equals the last running balance
}
