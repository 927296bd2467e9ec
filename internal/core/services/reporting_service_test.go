package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetReportSnapshot(ctx context.Context, asOf, from, to time.Time) (*domain.ReportSnapshot, error) {
	args := m.Called(ctx, asOf, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSnapshot), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
	asOf     time.Time
	from     time.Time
	to       time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.asOf = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.from = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.to = suite.asOf
}

func row(id int64, number, name string, category domain.AccountCategory, side domain.NormalSide, initial int64) domain.ReportAccountRow {
	return domain.ReportAccountRow{
		Account: domain.Account{
			AccountID:      id,
			Number:         number,
			Name:           name,
			Category:       category,
			NormalSide:     side,
			InitialBalance: decimal.NewFromInt(initial),
		},
	}
}

// snapshotRows gives a small posted world that obeys the accounting identity:
// Cash 1500 = Loans 400 + Capital 500 + (Revenue 800 - Expense 200).
func snapshotRows() []domain.ReportAccountRow {
	cash := row(1, "101", "Cash", domain.Asset, domain.DebitSide, 900)
	cash.DebitsAsOf = decimal.NewFromInt(800)
	cash.CreditsAsOf = decimal.NewFromInt(200)

	loans := row(2, "201", "Loans Payable", domain.Liability, domain.CreditSide, 400)

	capital := row(3, "301", "Owner Capital", domain.Equity, domain.CreditSide, 500)

	revenue := row(4, "401", "Service Revenue", domain.Revenue, domain.CreditSide, 0)
	revenue.CreditsAsOf = decimal.NewFromInt(800)
	revenue.CreditsInRange = decimal.NewFromInt(800)

	expense := row(5, "501", "Rent Expense", domain.Expense, domain.DebitSide, 0)
	expense.DebitsAsOf = decimal.NewFromInt(200)
	expense.DebitsInRange = decimal.NewFromInt(200)

	return []domain.ReportAccountRow{cash, loans, capital, revenue, expense}
}

func (suite *ReportingServiceTestSuite) snapshotOn(asOf, from, to time.Time, rows []domain.ReportAccountRow) {
	suite.mockRepo.On("GetReportSnapshot", mock.Anything, asOf, from, to).
		Return(&domain.ReportSnapshot{AsOf: asOf, From: from, To: to, Rows: rows}, nil).Once()
}

// --- TrialBalance ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_ColumnsAndTotals() {
	ctx := context.Background()
	suite.snapshotOn(suite.asOf, suite.asOf, suite.asOf, snapshotRows())

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 5)

	// Cash: 900 + (800 - 200) = 1500 in the debit column.
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(1500)), "got %s", report.Rows[0].Debit)
	suite.True(report.Rows[0].Credit.IsZero())

	// Revenue: 800 in the credit column.
	suite.True(report.Rows[3].Credit.Equal(decimal.NewFromInt(800)))

	suite.True(report.TotalDebits.Equal(decimal.NewFromInt(1700)), "got %s", report.TotalDebits)
	suite.True(report.TotalCredits.Equal(decimal.NewFromInt(1700)), "got %s", report.TotalCredits)
	suite.True(report.IsBalanced)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NegativeBalanceFlipsColumn() {
	ctx := context.Background()
	overdrawn := row(1, "101", "Cash", domain.Asset, domain.DebitSide, 100)
	overdrawn.CreditsAsOf = decimal.NewFromInt(250)
	suite.snapshotOn(suite.asOf, suite.asOf, suite.asOf, []domain.ReportAccountRow{overdrawn})

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	// Balance is -150; a debit-normal account lands in the credit column as +150.
	suite.True(report.Rows[0].Debit.IsZero())
	suite.True(report.Rows[0].Credit.Equal(decimal.NewFromInt(150)), "got %s", report.Rows[0].Credit)
	suite.False(report.IsBalanced)
}

// --- IncomeStatement ---

func (suite *ReportingServiceTestSuite) TestIncomeStatement_NetsRevenueAgainstExpense() {
	ctx := context.Background()
	suite.snapshotOn(suite.to, suite.from, suite.to, snapshotRows())

	report, err := suite.service.IncomeStatement(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Len(report.Revenues, 1)
	suite.Len(report.Expenses, 1)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(800)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(200)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(600)), "got %s", report.NetIncome)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_InvertedRange() {
	ctx := context.Background()

	report, err := suite.service.IncomeStatement(ctx, suite.to, suite.from)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetReportSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- BalanceSheet ---

func (suite *ReportingServiceTestSuite) TestBalanceSheet_IdentityHoldsWithNetIncomeLine() {
	ctx := context.Background()
	suite.snapshotOn(suite.asOf, suite.asOf, suite.asOf, snapshotRows())

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1500)), "got %s", report.TotalAssets)
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(400)))

	// Equity is capital plus the synthetic net income line.
	suite.Require().Len(report.Equity, 2)
	netIncomeLine := report.Equity[1]
	suite.Equal("Net Income", netIncomeLine.Name)
	suite.Equal("Retained Earnings", netIncomeLine.Subcategory)
	suite.True(netIncomeLine.Amount.Equal(decimal.NewFromInt(600)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(1100)), "got %s", report.TotalEquity)

	suite.True(report.IsBalanced)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- RetainedEarningsStatement ---

func (suite *ReportingServiceTestSuite) TestRetainedEarnings_RollForward() {
	ctx := context.Background()
	rows := snapshotRows()
	// Pretend 100 of revenue was earned before the period started.
	rows[3].CreditsBefore = decimal.NewFromInt(100)
	suite.snapshotOn(suite.to, suite.from, suite.to, rows)

	report, err := suite.service.RetainedEarningsStatement(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.BeginningRetainedEarnings.Equal(decimal.NewFromInt(100)), "got %s", report.BeginningRetainedEarnings)
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(600)))
	suite.True(report.Dividends.IsZero())
	suite.True(report.EndingRetainedEarnings.Equal(decimal.NewFromInt(700)), "got %s", report.EndingRetainedEarnings)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRetainedEarnings_IncludesCarriedEquityAccount() {
	ctx := context.Background()
	rows := snapshotRows()
	// An equity account flagged RE carries prior-period earnings: 250 initial
	// plus 50 credited before the period joins the beginning balance.
	carried := row(6, "305", "Retained Earnings", domain.Equity, domain.CreditSide, 250)
	carried.Account.Statement = domain.RetainedEarnings
	carried.CreditsBefore = decimal.NewFromInt(50)
	rows = append(rows, carried)
	suite.snapshotOn(suite.to, suite.from, suite.to, rows)

	report, err := suite.service.RetainedEarningsStatement(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.BeginningRetainedEarnings.Equal(decimal.NewFromInt(300)), "got %s", report.BeginningRetainedEarnings)
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(600)))
	suite.True(report.EndingRetainedEarnings.Equal(decimal.NewFromInt(900)), "got %s", report.EndingRetainedEarnings)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRetainedEarnings_InvertedRange() {
	ctx := context.Background()

	report, err := suite.service.RetainedEarningsStatement(ctx, suite.to, suite.from)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
