package accounting

import (
	"fmt"
	"sort"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
)

// ValidateEntry checks a draft journal entry against the double-entry rules.
// It collects every failure into one ValidationError instead of stopping at
// the first, so a caller can fix a whole submission in one round trip.
// accounts must contain every account the caller could reference; lines
// naming unknown IDs are reported as field failures, not looked up here.
func ValidateEntry(entry domain.JournalEntry, accounts map[int64]domain.Account) error {
	verr := &apperrors.ValidationError{}

	if entry.EntryDate.IsZero() {
		verr.Add("entryDate", "entry date is required")
	}

	if len(entry.Lines) < 2 {
		verr.Add("lines", "entry must have at least two lines, got %d", len(entry.Lines))
	}

	debitCount := 0
	creditCount := 0
	seen := make(map[int64]int, len(entry.Lines))

	for i, line := range entry.Lines {
		field := func(name string) string { return fmt.Sprintf("lines[%d].%s", i, name) }

		if line.Debit.IsNegative() {
			verr.Add(field("debit"), "amount must not be negative, got %s", line.Debit)
		}
		if line.Credit.IsNegative() {
			verr.Add(field("credit"), "amount must not be negative, got %s", line.Credit)
		}

		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		switch {
		case hasDebit && hasCredit:
			verr.Add(field("amount"), "line must carry an amount on exactly one side, got debit %s and credit %s", line.Debit, line.Credit)
		case !hasDebit && !hasCredit:
			verr.Add(field("amount"), "line must carry a positive amount on one side")
		case hasDebit:
			debitCount++
		default:
			creditCount++
		}

		if prev, dup := seen[line.AccountID]; dup {
			verr.Add(field("accountID"), "account %d already used on line %d", line.AccountID, prev)
		} else {
			seen[line.AccountID] = i
		}

		account, ok := accounts[line.AccountID]
		if !ok {
			verr.Add(field("accountID"), "account %d does not exist", line.AccountID)
			continue
		}
		if !account.IsActive {
			verr.Add(field("accountID"), "account %s (%s) is inactive", account.Number, account.Name)
		}
	}

	if debitCount == 0 {
		verr.Add("lines", "entry must have at least one debit line")
	}
	if creditCount == 0 {
		verr.Add("lines", "entry must have at least one credit line")
	}

	totalDebits := entry.TotalDebits()
	totalCredits := entry.TotalCredits()
	if !totalDebits.Equal(totalCredits) {
		verr.Add("lines", "debits %s do not equal credits %s (difference %s)",
			totalDebits.StringFixed(2), totalCredits.StringFixed(2), totalDebits.Sub(totalCredits).StringFixed(2))
	}

	return verr.ErrOrNil()
}

// NormalizeLines orders a validated line set debits-first, preserving the
// submitted relative order within each side, and renumbers LineOrder from 1.
func NormalizeLines(lines []domain.JournalLine) []domain.JournalLine {
	normalized := make([]domain.JournalLine, len(lines))
	copy(normalized, lines)
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].IsDebit() && !normalized[j].IsDebit()
	})
	for i := range normalized {
		normalized[i].LineOrder = i + 1
	}
	return normalized
}
