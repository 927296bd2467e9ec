package accounting

import (
	"fmt"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta returns the balance change a journal line applies to its
// account under normal-side arithmetic:
// DEBIT-normal accounts grow with debits (delta = debit - credit),
// CREDIT-normal accounts grow with credits (delta = credit - debit).
// This is the single place balance arithmetic lives; services and
// repositories both call it so posting and reporting can never disagree.
func SignedDelta(line domain.JournalLine, normalSide domain.NormalSide) (decimal.Decimal, error) {
	switch normalSide {
	case domain.DebitSide:
		return line.Debit.Sub(line.Credit), nil
	case domain.CreditSide:
		return line.Credit.Sub(line.Debit), nil
	}
	return decimal.Zero, fmt.Errorf("unknown normal side %q for account ID %d", normalSide, line.AccountID)
}

// SignedMovement applies the same normal-side arithmetic to aggregated
// debit/credit totals, used by report computation.
func SignedMovement(debits, credits decimal.Decimal, normalSide domain.NormalSide) decimal.Decimal {
	if normalSide == domain.CreditSide {
		return credits.Sub(debits)
	}
	return debits.Sub(credits)
}
