package domain

import (
	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting classification of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// CategoryOrder returns the conventional chart-of-accounts ordering position
// for a category (assets first, expenses last). Unknown categories sort last.
func CategoryOrder(c AccountCategory) int {
	switch c {
	case Asset:
		return 0
	case Liability:
		return 1
	case Equity:
		return 2
	case Revenue:
		return 3
	case Expense:
		return 4
	}
	return 5
}

// NormalSide indicates which side increases an account's balance.
type NormalSide string

const (
	DebitSide  NormalSide = "DEBIT"
	CreditSide NormalSide = "CREDIT"
)

// StatementType identifies the financial statement an account reports on.
type StatementType string

const (
	IncomeStatement  StatementType = "IS"
	BalanceSheet     StatementType = "BS"
	RetainedEarnings StatementType = "RE"
)

// Account represents a chart-of-accounts entry within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID      int64           `json:"accountID"`      // Primary Key (sequence-assigned)
	Number         string          `json:"number"`         // Unique, digits only
	Name           string          `json:"name"`           // User-defined name
	Description    string          `json:"description"`    // Purpose of the account
	Category       AccountCategory `json:"category"`       // ASSET, LIABILITY, etc.
	Subcategory    string          `json:"subcategory"`    // e.g. "Current Assets", "Owner's Equity"
	NormalSide     NormalSide      `json:"normalSide"`     // Side that increases the balance
	Statement      StatementType   `json:"statement"`      // IS, BS or RE
	DisplayOrder   int             `json:"displayOrder"`   // Ordering within the chart of accounts
	Comment        string          `json:"comment"`        // Nullable free-form note
	InitialBalance decimal.Decimal `json:"initialBalance"` // Immutable after creation
	Balance        decimal.Decimal `json:"balance"`        // Mutated only by posting approved entries
	IsActive       bool            `json:"isActive"`       // Deactivation flag; accounts are never deleted
	AuditFields
}

// ValidCategory reports whether c is a known account category.
func ValidCategory(c AccountCategory) bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// ValidNormalSide reports whether s is a known normal side.
func ValidNormalSide(s NormalSide) bool {
	return s == DebitSide || s == CreditSide
}

// ValidStatement reports whether t is a known statement type.
func ValidStatement(t StatementType) bool {
	switch t {
	case IncomeStatement, BalanceSheet, RetainedEarnings:
		return true
	}
	return false
}
