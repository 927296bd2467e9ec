package services

import (
	"context"
	"time"

	"github.com/flowcounts/backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Each report is computed from a single consistent snapshot read, so reports
// requested for the same instant agree with each other.
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// IncomeStatement generates an income statement for a specific period.
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// RetainedEarningsStatement rolls retained earnings forward through a period.
	RetainedEarningsStatement(ctx context.Context, from, to time.Time) (*domain.RetainedEarningsReport, error)
}
