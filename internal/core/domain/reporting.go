package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportAccountRow is one account's movement totals inside a report snapshot.
// Debit and credit totals are accumulated separately so each report can apply
// its own normal-side arithmetic.
type ReportAccountRow struct {
	Account        Account
	DebitsAsOf     decimal.Decimal // Approved debits with entry_date <= asOf
	CreditsAsOf    decimal.Decimal // Approved credits with entry_date <= asOf
	DebitsInRange  decimal.Decimal // Approved debits within [from, to]
	CreditsInRange decimal.Decimal // Approved credits within [from, to]
	DebitsBefore   decimal.Decimal // Approved debits with entry_date < from
	CreditsBefore  decimal.Decimal // Approved credits with entry_date < from
}

// ReportSnapshot is the single consistent read every report derives from.
// All four report shapes computed from one snapshot agree with each other.
type ReportSnapshot struct {
	AsOf time.Time
	From time.Time
	To   time.Time
	Rows []ReportAccountRow
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   int64           `json:"accountID"`
	Number      string          `json:"number"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account balance in its debit or credit
// column with a self-check that the columns agree.
type TrialBalanceReport struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// ReportAccountAmount represents an account with its net amount for financial
// statements.
type ReportAccountAmount struct {
	AccountID   int64           `json:"accountID"`
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementReport nets revenue against expense movement over a period.
type IncomeStatementReport struct {
	From          time.Time             `json:"from"`
	To            time.Time             `json:"to"`
	Revenues      []ReportAccountAmount `json:"revenues"`
	Expenses      []ReportAccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal       `json:"totalRevenue"`
	TotalExpenses decimal.Decimal       `json:"totalExpenses"`
	NetIncome     decimal.Decimal       `json:"netIncome"`
}

// BalanceSheetReport presents assets, liabilities and equity as of a date.
// Equity includes net income accumulated through the same date so the
// accounting identity holds.
type BalanceSheetReport struct {
	AsOf             time.Time             `json:"asOf"`
	Assets           []ReportAccountAmount `json:"assets"`
	Liabilities      []ReportAccountAmount `json:"liabilities"`
	Equity           []ReportAccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal       `json:"totalAssets"`
	TotalLiabilities decimal.Decimal       `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal       `json:"totalEquity"`
	IsBalanced       bool                  `json:"isBalanced"`
}

// RetainedEarningsReport rolls prior earnings forward through a period.
// Dividends are carried as an explicit zero line.
type RetainedEarningsReport struct {
	From                      time.Time       `json:"from"`
	To                        time.Time       `json:"to"`
	BeginningRetainedEarnings decimal.Decimal `json:"beginningRetainedEarnings"`
	NetIncome                 decimal.Decimal `json:"netIncome"`
	Dividends                 decimal.Decimal `json:"dividends"`
	EndingRetainedEarnings    decimal.Decimal `json:"endingRetainedEarnings"`
}
