package dto

import (
	"time"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerParams defines query parameters for a ledger projection.
type LedgerParams struct {
	From *time.Time
	To   *time.Time
}

// LedgerLineResponse is one row of an account ledger.
type LedgerLineResponse struct {
	EntryID          int64           `json:"entryID"`
	EntryDate        string          `json:"entryDate"`
	EntryDescription string          `json:"entryDescription"`
	LineDescription  string          `json:"lineDescription"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	RunningBalance   decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse is the ledger projection for one account.
type LedgerResponse struct {
	Account        AccountResponse      `json:"account"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// ToLedgerResponse converts a domain.AccountLedger to LedgerResponse DTO.
func ToLedgerResponse(ledger *domain.AccountLedger) LedgerResponse {
	lines := make([]LedgerLineResponse, len(ledger.Lines))
	for i, l := range ledger.Lines {
		lines[i] = LedgerLineResponse{
			EntryID:          l.EntryID,
			EntryDate:        l.EntryDate.Format("2006-01-02"),
			EntryDescription: l.EntryDescription,
			LineDescription:  l.LineDescription,
			Debit:            money(l.Debit),
			Credit:           money(l.Credit),
			RunningBalance:   money(l.RunningBalance),
		}
	}
	return LedgerResponse{
		Account:        ToAccountResponse(&ledger.Account),
		OpeningBalance: money(ledger.OpeningBalance),
		Lines:          lines,
		ClosingBalance: money(ledger.ClosingBalance),
	}
}
