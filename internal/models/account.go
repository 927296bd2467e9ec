package models

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

// Account represents a chart-of-accounts row as persisted.
type Account struct {
	AccountID      int64           `db:"account_id"`
	Number         string          `db:"number"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	Category       AccountCategory `db:"category"`
	Subcategory    string          `db:"subcategory"`
	NormalSide     string          `db:"normal_side"`
	Statement      string          `db:"statement"`
	DisplayOrder   int             `db:"display_order"`
	Comment        string          `db:"comment"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	Balance        decimal.Decimal `db:"balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
