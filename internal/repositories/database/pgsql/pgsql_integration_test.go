package pgsql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	"github.com/flowcounts/backend/internal/repositories/database/pgsql"
	"github.com/flowcounts/backend/internal/testutil/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// PgsqlRepositoryTestSuite exercises the repositories against a real
// PostgreSQL instance. Skipped in -short mode.
type PgsqlRepositoryTestSuite struct {
	suite.Suite
	db    *testdb.TestDB
	repos portsrepo.RepositoryProvider
	ctx   context.Context
}

func (suite *PgsqlRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	db, err := testdb.NewTestDB(suite.ctx)
	if err != nil {
		suite.FailNow("Failed to start test database", err.Error())
	}
	suite.db = db
	suite.repos = pgsql.NewRepositoryProvider(db.Pool)
}

func (suite *PgsqlRepositoryTestSuite) TearDownSuite() {
	if suite.db != nil {
		_ = suite.db.Close(suite.ctx)
	}
}

func (suite *PgsqlRepositoryTestSuite) SetupTest() {
	if err := suite.db.Reset(suite.ctx); err != nil {
		suite.FailNow("Failed to reset test database", err.Error())
	}
}

func audit(userID string) domain.AuditFields {
	now := time.Now().UTC()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

func (suite *PgsqlRepositoryTestSuite) seedAccount(number, name string, category domain.AccountCategory, side domain.NormalSide, statement domain.StatementType, initial int64) *domain.Account {
	saved, err := suite.repos.AccountRepo.SaveAccount(suite.ctx, domain.Account{
		Number:         number,
		Name:           name,
		Description:    name,
		Category:       category,
		Subcategory:    "General",
		NormalSide:     side,
		Statement:      statement,
		InitialBalance: decimal.NewFromInt(initial),
		Balance:        decimal.NewFromInt(initial),
		IsActive:       true,
		AuditFields:    audit("seed"),
	})
	suite.Require().NoError(err)
	return saved
}

func (suite *PgsqlRepositoryTestSuite) seedPendingEntry(cashID, revenueID, amount int64) *domain.JournalEntry {
	saved, err := suite.repos.JournalRepo.SaveEntry(suite.ctx, domain.JournalEntry{
		EntryDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "January sales",
		Status:      domain.Pending,
		Lines: []domain.JournalLine{
			{AccountID: cashID, Debit: decimal.NewFromInt(amount), LineOrder: 1},
			{AccountID: revenueID, Credit: decimal.NewFromInt(amount), LineOrder: 2},
		},
		AuditFields: audit("user-1"),
	})
	suite.Require().NoError(err)
	return saved
}

// --- Accounts ---

func (suite *PgsqlRepositoryTestSuite) TestSaveAccount_DuplicateNumber() {
	suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)

	_, err := suite.repos.AccountRepo.SaveAccount(suite.ctx, domain.Account{
		Number:      "101",
		Name:        "Cash again",
		Description: "dup",
		Category:    domain.Asset,
		Subcategory: "General",
		NormalSide:  domain.DebitSide,
		Statement:   domain.BalanceSheet,
		IsActive:    true,
		AuditFields: audit("seed"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PgsqlRepositoryTestSuite) TestSetAccountActive_AlreadyInactive() {
	acc := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)

	suite.Require().NoError(suite.repos.AccountRepo.SetAccountActive(suite.ctx, acc.AccountID, false, "admin"))

	err := suite.repos.AccountRepo.SetAccountActive(suite.ctx, acc.AccountID, false, "admin")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PgsqlRepositoryTestSuite) TestListAccounts_PresentationOrder() {
	suite.seedAccount("501", "Rent Expense", domain.Expense, domain.DebitSide, domain.IncomeStatement, 0)
	suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	suite.seedAccount("201", "Loans Payable", domain.Liability, domain.CreditSide, domain.BalanceSheet, 0)

	accounts, err := suite.repos.AccountRepo.ListAccounts(suite.ctx, false)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 3)
	suite.Equal("101", accounts[0].Number)
	suite.Equal("201", accounts[1].Number)
	suite.Equal("501", accounts[2].Number)
}

// --- Journal entries ---

func (suite *PgsqlRepositoryTestSuite) TestSaveAndFindEntry_RoundTrip() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)

	saved := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)
	suite.NotZero(saved.EntryID)

	found, err := suite.repos.JournalRepo.FindEntryByID(suite.ctx, saved.EntryID)

	suite.Require().NoError(err)
	suite.Equal(domain.Pending, found.Status)
	suite.Require().Len(found.Lines, 2)
	suite.Equal(cash.AccountID, found.Lines[0].AccountID)
	suite.True(found.Lines[0].Debit.Equal(decimal.NewFromInt(100)))
	suite.Equal(revenue.AccountID, found.Lines[1].AccountID)
	suite.True(found.Lines[1].Credit.Equal(decimal.NewFromInt(100)))
}

func (suite *PgsqlRepositoryTestSuite) TestFindEntryByID_NotFound() {
	_, err := suite.repos.JournalRepo.FindEntryByID(suite.ctx, 9999)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PgsqlRepositoryTestSuite) TestApproveEntry_PostsBalancesAtomically() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 1000)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)
	entry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)

	err := suite.repos.JournalRepo.ApproveEntry(suite.ctx, entry.EntryID, "manager-1", time.Now().UTC())
	suite.Require().NoError(err)

	approved, err := suite.repos.JournalRepo.FindEntryByID(suite.ctx, entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Approved, approved.Status)
	suite.Equal("manager-1", approved.ReviewedBy)
	suite.NotNil(approved.ReviewedAt)

	cashAfter, err := suite.repos.AccountRepo.FindAccountByID(suite.ctx, cash.AccountID)
	suite.Require().NoError(err)
	suite.True(cashAfter.Balance.Equal(decimal.NewFromInt(1100)), "got %s", cashAfter.Balance)

	revenueAfter, err := suite.repos.AccountRepo.FindAccountByID(suite.ctx, revenue.AccountID)
	suite.Require().NoError(err)
	suite.True(revenueAfter.Balance.Equal(decimal.NewFromInt(100)), "got %s", revenueAfter.Balance)
}

func (suite *PgsqlRepositoryTestSuite) TestApproveEntry_InactiveAccountStaysPending() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)
	entry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)

	// Deactivation is allowed while the balance is zero, which is exactly the
	// window where a pending entry can still reference the account.
	suite.Require().NoError(suite.repos.AccountRepo.SetAccountActive(suite.ctx, revenue.AccountID, false, "admin"))

	err := suite.repos.JournalRepo.ApproveEntry(suite.ctx, entry.EntryID, "manager-1", time.Now().UTC())
	suite.Require().Error(err)
	suite.NotErrorIs(err, apperrors.ErrStateTransition)
	suite.Contains(err.Error(), "inactive")

	still, err := suite.repos.JournalRepo.FindEntryByID(suite.ctx, entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Pending, still.Status)

	cashAfter, err := suite.repos.AccountRepo.FindAccountByID(suite.ctx, cash.AccountID)
	suite.Require().NoError(err)
	suite.True(cashAfter.Balance.IsZero(), "no partial posting may be observed, got %s", cashAfter.Balance)
}

func (suite *PgsqlRepositoryTestSuite) TestApproveEntry_ConcurrentReviewersOneWins() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)
	entry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = suite.repos.JournalRepo.ApproveEntry(suite.ctx, entry.EntryID, "manager-1", time.Now().UTC())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			suite.ErrorIs(err, apperrors.ErrStateTransition)
		}
	}
	suite.Equal(1, winners, "exactly one reviewer must win the race")

	// Balances moved exactly once.
	cashAfter, err := suite.repos.AccountRepo.FindAccountByID(suite.ctx, cash.AccountID)
	suite.Require().NoError(err)
	suite.True(cashAfter.Balance.Equal(decimal.NewFromInt(100)), "got %s", cashAfter.Balance)
}

func (suite *PgsqlRepositoryTestSuite) TestRejectEntry_NoBalanceChange() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 500)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)
	entry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)

	err := suite.repos.JournalRepo.RejectEntry(suite.ctx, entry.EntryID, "wrong period", "manager-1", time.Now().UTC())
	suite.Require().NoError(err)

	rejected, err := suite.repos.JournalRepo.FindEntryByID(suite.ctx, entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Rejected, rejected.Status)
	suite.Equal("wrong period", rejected.RejectionReason)

	cashAfter, err := suite.repos.AccountRepo.FindAccountByID(suite.ctx, cash.AccountID)
	suite.Require().NoError(err)
	suite.True(cashAfter.Balance.Equal(decimal.NewFromInt(500)))
}

func (suite *PgsqlRepositoryTestSuite) TestReplaceAndDelete_RefuseDecidedEntries() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)
	entry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)

	suite.Require().NoError(suite.repos.JournalRepo.RejectEntry(suite.ctx, entry.EntryID, "nope", "manager-1", time.Now().UTC()))

	entry.Description = "edited"
	suite.ErrorIs(suite.repos.JournalRepo.ReplaceEntry(suite.ctx, *entry), apperrors.ErrStateTransition)
	suite.ErrorIs(suite.repos.JournalRepo.DeleteEntry(suite.ctx, entry.EntryID), apperrors.ErrStateTransition)
}

func (suite *PgsqlRepositoryTestSuite) TestDeleteEntry_RemovesPendingEntry() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)
	entry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)

	suite.Require().NoError(suite.repos.JournalRepo.DeleteEntry(suite.ctx, entry.EntryID))

	_, err := suite.repos.JournalRepo.FindEntryByID(suite.ctx, entry.EntryID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PgsqlRepositoryTestSuite) TestListEntries_StatusFilter() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)
	first := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)
	suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 200)

	suite.Require().NoError(suite.repos.JournalRepo.RejectEntry(suite.ctx, first.EntryID, "nope", "manager-1", time.Now().UTC()))

	rejected := domain.Rejected
	entries, err := suite.repos.JournalRepo.ListEntries(suite.ctx, &rejected, 50, 0)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(first.EntryID, entries[0].EntryID)
	suite.Len(entries[0].Lines, 2)

	all, err := suite.repos.JournalRepo.ListEntries(suite.ctx, nil, 50, 0)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

// --- Ledger projection reads ---

func (suite *PgsqlRepositoryTestSuite) TestLedgerReads_OnlyApprovedLines() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 0)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)

	approvedEntry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)
	suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 999) // stays pending

	suite.Require().NoError(suite.repos.JournalRepo.ApproveEntry(suite.ctx, approvedEntry.EntryID, "manager-1", time.Now().UTC()))

	lines, err := suite.repos.JournalRepo.ListApprovedLinesByAccount(suite.ctx, cash.AccountID, nil, nil)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.Equal(approvedEntry.EntryID, lines[0].EntryID)
	suite.True(lines[0].Debit.Equal(decimal.NewFromInt(100)))

	// The entry is dated 2026-01-15; everything before 2026-02-01 counts.
	debits, credits, err := suite.repos.JournalRepo.SumApprovedMovementBefore(suite.ctx, cash.AccountID,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.True(debits.Equal(decimal.NewFromInt(100)), "got %s", debits)
	suite.True(credits.IsZero())

	// Nothing strictly before the entry date itself.
	debits, credits, err = suite.repos.JournalRepo.SumApprovedMovementBefore(suite.ctx, cash.AccountID,
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.True(debits.IsZero())
	suite.True(credits.IsZero())
}

// --- Report snapshot ---

func (suite *PgsqlRepositoryTestSuite) TestGetReportSnapshot_Buckets() {
	cash := suite.seedAccount("101", "Cash", domain.Asset, domain.DebitSide, domain.BalanceSheet, 1000)
	revenue := suite.seedAccount("401", "Revenue", domain.Revenue, domain.CreditSide, domain.IncomeStatement, 0)

	janEntry := suite.seedPendingEntry(cash.AccountID, revenue.AccountID, 100)
	suite.Require().NoError(suite.repos.JournalRepo.ApproveEntry(suite.ctx, janEntry.EntryID, "manager-1", time.Now().UTC()))

	// Window over February: the January posting is "before", not "in range".
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	snap, err := suite.repos.ReportingRepo.GetReportSnapshot(suite.ctx, asOf, from, asOf)
	suite.Require().NoError(err)
	suite.Require().Len(snap.Rows, 2)

	var cashRow, revenueRow *domain.ReportAccountRow
	for i := range snap.Rows {
		switch snap.Rows[i].Account.AccountID {
		case cash.AccountID:
			cashRow = &snap.Rows[i]
		case revenue.AccountID:
			revenueRow = &snap.Rows[i]
		}
	}
	suite.Require().NotNil(cashRow)
	suite.Require().NotNil(revenueRow)

	suite.True(cashRow.DebitsAsOf.Equal(decimal.NewFromInt(100)), "got %s", cashRow.DebitsAsOf)
	suite.True(cashRow.DebitsInRange.IsZero())
	suite.True(cashRow.DebitsBefore.Equal(decimal.NewFromInt(100)))

	suite.True(revenueRow.CreditsAsOf.Equal(decimal.NewFromInt(100)))
	suite.True(revenueRow.CreditsInRange.IsZero())
	suite.True(revenueRow.CreditsBefore.Equal(decimal.NewFromInt(100)))
}

// --- Run Suite ---
func TestPgsqlRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PgsqlRepositoryTestSuite))
}
