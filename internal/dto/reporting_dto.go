package dto

import (
	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   int64           `json:"accountID"`
	Number      string          `json:"number"`
	AccountName string          `json:"accountName"`
	Category    string          `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID   int64           `json:"accountID"`
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenues []AccountAmountResponse `json:"revenues"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
	IsBalanced bool `json:"isBalanced"`
}

// RetainedEarningsResponse represents the retained earnings statement response
type RetainedEarningsResponse struct {
	FromDate                  string          `json:"fromDate"`
	ToDate                    string          `json:"toDate"`
	BeginningRetainedEarnings decimal.Decimal `json:"beginningRetainedEarnings"`
	NetIncome                 decimal.Decimal `json:"netIncome"`
	Dividends                 decimal.Decimal `json:"dividends"`
	EndingRetainedEarnings    decimal.Decimal `json:"endingRetainedEarnings"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:       report.AsOf.Format("2006-01-02"),
		Rows:       make([]TrialBalanceRowResponse, len(report.Rows)),
		IsBalanced: report.IsBalanced,
	}
	for i, row := range report.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Number:      row.Number,
			AccountName: row.AccountName,
			Category:    string(row.Category),
			Debit:       money(row.Debit),
			Credit:      money(row.Credit),
		}
	}
	response.Totals.Debit = money(report.TotalDebits)
	response.Totals.Credit = money(report.TotalCredits)
	return response
}

func toAccountAmountResponses(amounts []domain.ReportAccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		res[i] = AccountAmountResponse{
			AccountID:   a.AccountID,
			Number:      a.Number,
			Name:        a.Name,
			Subcategory: a.Subcategory,
			Amount:      money(a.Amount),
		}
	}
	return res
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(report *domain.IncomeStatementReport) IncomeStatementResponse {
	response := IncomeStatementResponse{
		FromDate: report.From.Format("2006-01-02"),
		ToDate:   report.To.Format("2006-01-02"),
		Revenues: toAccountAmountResponses(report.Revenues),
		Expenses: toAccountAmountResponses(report.Expenses),
	}
	response.Summary.TotalRevenue = money(report.TotalRevenue)
	response.Summary.TotalExpenses = money(report.TotalExpenses)
	response.Summary.NetIncome = money(report.NetIncome)
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
		IsBalanced:  report.IsBalanced,
	}
	response.Summary.TotalAssets = money(report.TotalAssets)
	response.Summary.TotalLiabilities = money(report.TotalLiabilities)
	response.Summary.TotalEquity = money(report.TotalEquity)
	return response
}

// ToRetainedEarningsResponse converts a domain retained earnings report to a DTO response
func ToRetainedEarningsResponse(report *domain.RetainedEarningsReport) RetainedEarningsResponse {
	return RetainedEarningsResponse{
		FromDate:                  report.From.Format("2006-01-02"),
		ToDate:                    report.To.Format("2006-01-02"),
		BeginningRetainedEarnings: money(report.BeginningRetainedEarnings),
		NetIncome:                 money(report.NetIncome),
		Dividends:                 money(report.Dividends),
		EndingRetainedEarnings:    money(report.EndingRetainedEarnings),
	}
}
