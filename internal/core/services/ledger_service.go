package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/dto"
	"github.com/flowcounts/backend/internal/utils/accounting"
)

// ledgerService replays approved journal lines into per-account running
// balances.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.LedgerLineReader
}

// NewLedgerService creates a new ledger projection service.
func NewLedgerService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.LedgerLineReader) portssvc.LedgerService {
	return &ledgerService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Ensure ledgerService implements the LedgerService interface
var _ portssvc.LedgerService = (*ledgerService)(nil)

// ProjectLedger replays the account's approved lines in (entry date,
// entry ID) order from the initial balance. With no date window the final
// running balance equals the account's stored balance: both are the initial
// balance plus every posted delta, applied by the same arithmetic.
func (s *ledgerService) ProjectLedger(ctx context.Context, accountID int64, params dto.LedgerParams) (*domain.AccountLedger, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for ledger projection",
				slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		verr := &apperrors.ValidationError{}
		verr.Add("to", "end date %s is before start date %s",
			params.To.Format("2006-01-02"), params.From.Format("2006-01-02"))
		return nil, verr
	}

	// Opening balance: initial balance plus everything posted before the window.
	opening := account.InitialBalance
	if params.From != nil {
		debits, credits, err := s.journalRepo.SumApprovedMovementBefore(ctx, accountID, *params.From)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum prior movement for ledger",
				slog.Int64("account_id", accountID))
			return nil, fmt.Errorf("failed to compute opening balance: %w", err)
		}
		opening = opening.Add(accounting.SignedMovement(debits, credits, account.NormalSide))
	}

	lines, err := s.journalRepo.ListApprovedLinesByAccount(ctx, accountID, params.From, params.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approved lines for ledger",
			slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve ledger lines: %w", err)
	}

	running := opening
	for i := range lines {
		running = running.Add(accounting.SignedMovement(lines[i].Debit, lines[i].Credit, account.NormalSide))
		lines[i].RunningBalance = running
	}

	s.LogDebug(ctx, "Ledger projected",
		slog.Int64("account_id", accountID),
		slog.Int("line_count", len(lines)))

	return &domain.AccountLedger{
		Account:        *account,
		OpeningBalance: opening,
		Lines:          lines,
		ClosingBalance: running,
	}, nil
}
