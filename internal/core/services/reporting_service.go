package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface. Every report is
// a pure function over one snapshot read, so reports for the same instant
// agree with each other by construction.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) snapshot(ctx context.Context, asOf, from, to time.Time) (*domain.ReportSnapshot, error) {
	snap, err := s.reportingRepo.GetReportSnapshot(ctx, asOf, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve report snapshot",
			slog.String("asOf", asOf.Format("2006-01-02")))
		return nil, fmt.Errorf("failed to retrieve report snapshot: %w", err)
	}
	return snap, nil
}

func validateRange(from, to time.Time) error {
	if to.Before(from) {
		verr := &apperrors.ValidationError{}
		verr.Add("to", "end date %s is before start date %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
		return verr
	}
	return nil
}

// balanceAsOf is the account's full balance at the snapshot's asOf instant:
// initial balance plus signed movement.
func balanceAsOf(row domain.ReportAccountRow) decimal.Decimal {
	return row.Account.InitialBalance.Add(
		accounting.SignedMovement(row.DebitsAsOf, row.CreditsAsOf, row.Account.NormalSide))
}

// netIncomeFromBalances nets revenue balances against expense balances using
// the supplied per-row balance function.
func netIncomeFromBalances(rows []domain.ReportAccountRow, balance func(domain.ReportAccountRow) decimal.Decimal) decimal.Decimal {
	net := decimal.Zero
	for _, row := range rows {
		switch row.Account.Category {
		case domain.Revenue:
			net = net.Add(balance(row))
		case domain.Expense:
			net = net.Sub(balance(row))
		}
	}
	return net
}

// TrialBalance generates a trial balance report as of a specific date.
// Each balance lands in its normal-side column; a negative balance flips to
// the opposite column as a positive amount.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	snap, err := s.snapshot(ctx, asOf, asOf, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:         asOf,
		Rows:         make([]domain.TrialBalanceRow, 0, len(snap.Rows)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, row := range snap.Rows {
		balance := balanceAsOf(row)

		tbRow := domain.TrialBalanceRow{
			AccountID:   row.Account.AccountID,
			Number:      row.Account.Number,
			AccountName: row.Account.Name,
			Category:    row.Account.Category,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		debitColumn := row.Account.NormalSide == domain.DebitSide
		if balance.IsNegative() {
			debitColumn = !debitColumn
			balance = balance.Neg()
		}
		if debitColumn {
			tbRow.Debit = balance
		} else {
			tbRow.Credit = balance
		}

		report.Rows = append(report.Rows, tbRow)
		report.TotalDebits = report.TotalDebits.Add(tbRow.Debit)
		report.TotalCredits = report.TotalCredits.Add(tbRow.Credit)
	}

	report.IsBalanced = report.TotalDebits.Equal(report.TotalCredits)

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// IncomeStatement generates an income statement for a specific period.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, to, from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.IncomeStatementReport{
		From:          from,
		To:            to,
		Revenues:      []domain.ReportAccountAmount{},
		Expenses:      []domain.ReportAccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, row := range snap.Rows {
		if row.Account.Category != domain.Revenue && row.Account.Category != domain.Expense {
			continue
		}
		amount := accounting.SignedMovement(row.DebitsInRange, row.CreditsInRange, row.Account.NormalSide)
		entry := domain.ReportAccountAmount{
			AccountID:   row.Account.AccountID,
			Number:      row.Account.Number,
			Name:        row.Account.Name,
			Subcategory: row.Account.Subcategory,
			Amount:      amount,
		}
		if row.Account.Category == domain.Revenue {
			report.Revenues = append(report.Revenues, entry)
			report.TotalRevenue = report.TotalRevenue.Add(amount)
		} else {
			report.Expenses = append(report.Expenses, entry)
			report.TotalExpenses = report.TotalExpenses.Add(amount)
		}
	}

	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")),
		slog.String("net_income", report.NetIncome.StringFixed(2)))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date.
// Equity carries a synthetic net income line covering all revenue and expense
// balances through asOf, which is what keeps the accounting identity intact.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	snap, err := s.snapshot(ctx, asOf, asOf, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.ReportAccountAmount{},
		Liabilities:      []domain.ReportAccountAmount{},
		Equity:           []domain.ReportAccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, row := range snap.Rows {
		amount := balanceAsOf(row)
		entry := domain.ReportAccountAmount{
			AccountID:   row.Account.AccountID,
			Number:      row.Account.Number,
			Name:        row.Account.Name,
			Subcategory: row.Account.Subcategory,
			Amount:      amount,
		}
		switch row.Account.Category {
		case domain.Asset:
			report.Assets = append(report.Assets, entry)
			report.TotalAssets = report.TotalAssets.Add(amount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, entry)
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
		case domain.Equity:
			report.Equity = append(report.Equity, entry)
			report.TotalEquity = report.TotalEquity.Add(amount)
		}
	}

	netIncome := netIncomeFromBalances(snap.Rows, balanceAsOf)
	report.Equity = append(report.Equity, domain.ReportAccountAmount{
		Name:        "Net Income",
		Subcategory: "Retained Earnings",
		Amount:      netIncome,
	})
	report.TotalEquity = report.TotalEquity.Add(netIncome)

	report.IsBalanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// RetainedEarningsStatement rolls retained earnings forward through a period.
// Dividends are not tracked and stay a zero line.
func (s *reportingService) RetainedEarningsStatement(ctx context.Context, from, to time.Time) (*domain.RetainedEarningsReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, to, from, to)
	if err != nil {
		return nil, err
	}

	// Beginning balance: all revenue/expense balances accumulated strictly
	// before the period, including initial balances, plus the carried balance
	// of equity accounts flagged as retained-earnings accounts.
	beginning := netIncomeFromBalances(snap.Rows, func(row domain.ReportAccountRow) decimal.Decimal {
		return row.Account.InitialBalance.Add(
			accounting.SignedMovement(row.DebitsBefore, row.CreditsBefore, row.Account.NormalSide))
	})
	for _, row := range snap.Rows {
		if row.Account.Category != domain.Equity || row.Account.Statement != domain.RetainedEarnings {
			continue
		}
		beginning = beginning.Add(row.Account.InitialBalance).Add(
			accounting.SignedMovement(row.DebitsBefore, row.CreditsBefore, row.Account.NormalSide))
	}

	netIncome := netIncomeFromBalances(snap.Rows, func(row domain.ReportAccountRow) decimal.Decimal {
		return accounting.SignedMovement(row.DebitsInRange, row.CreditsInRange, row.Account.NormalSide)
	})

	report := &domain.RetainedEarningsReport{
		From:                      from,
		To:                        to,
		BeginningRetainedEarnings: beginning,
		NetIncome:                 netIncome,
		Dividends:                 decimal.Zero,
		EndingRetainedEarnings:    beginning.Add(netIncome),
	}

	s.LogInfo(ctx, "Retained earnings statement generated",
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")),
		slog.String("ending", report.EndingRetainedEarnings.StringFixed(2)))
	return report, nil
}
