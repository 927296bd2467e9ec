package dto

import (
	"time"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Number         string                 `json:"number" binding:"required"`
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description" binding:"required"`
	Category       domain.AccountCategory `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Subcategory    string                 `json:"subcategory" binding:"required"`
	NormalSide     domain.NormalSide      `json:"normalSide" binding:"required,oneof=DEBIT CREDIT"`
	Statement      domain.StatementType   `json:"statement" binding:"required,oneof=IS BS RE"`
	DisplayOrder   int                    `json:"displayOrder"`
	Comment        string                 `json:"comment"`
	InitialBalance decimal.Decimal        `json:"initialBalance" binding:"dgte0"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Initial balance and balance are deliberately absent: balances change only
// through the posting path.
type UpdateAccountRequest struct {
	Name         *string                 `json:"name"`
	Description  *string                 `json:"description"`
	Category     *domain.AccountCategory `json:"category"`
	Subcategory  *string                 `json:"subcategory"`
	NormalSide   *domain.NormalSide      `json:"normalSide"`
	Statement    *domain.StatementType   `json:"statement"`
	DisplayOrder *int                    `json:"displayOrder"`
	Comment      *string                 `json:"comment"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID      int64                  `json:"accountID"`
	Number         string                 `json:"number"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Category       domain.AccountCategory `json:"category"`
	Subcategory    string                 `json:"subcategory"`
	NormalSide     domain.NormalSide      `json:"normalSide"`
	Statement      domain.StatementType   `json:"statement"`
	DisplayOrder   int                    `json:"displayOrder"`
	Comment        string                 `json:"comment"`
	InitialBalance decimal.Decimal        `json:"initialBalance"`
	Balance        decimal.Decimal        `json:"balance"`
	IsActive       bool                   `json:"isActive"`
	CreatedAt      time.Time              `json:"createdAt"`
	CreatedBy      string                 `json:"createdBy"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy  string                 `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Number:         acc.Number,
		Name:           acc.Name,
		Description:    acc.Description,
		Category:       acc.Category,
		Subcategory:    acc.Subcategory,
		NormalSide:     acc.NormalSide,
		Statement:      acc.Statement,
		DisplayOrder:   acc.DisplayOrder,
		Comment:        acc.Comment,
		InitialBalance: money(acc.InitialBalance),
		Balance:        money(acc.Balance),
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
