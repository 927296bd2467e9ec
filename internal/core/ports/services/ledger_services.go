package services

import (
	"context"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/dto"
)

// LedgerService defines the ledger projection for a single account.
type LedgerService interface {
	// ProjectLedger replays the account's approved lines in
	// (entry date, entry ID) order from its initial balance, producing a
	// running balance per line. Deterministic: the same data yields the
	// same projection on every call.
	ProjectLedger(ctx context.Context, accountID int64, params dto.LedgerParams) (*domain.AccountLedger, error)
}
