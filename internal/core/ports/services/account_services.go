package services

import (
	"context"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs, keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves the chart of accounts in presentation order.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account. ADMIN only.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)

	// UpdateAccount updates an existing account's metadata. ADMIN only.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error)

	// DeactivateAccount marks an account inactive. Fails with a conflict
	// unless the account's balance is exactly zero.
	DeactivateAccount(ctx context.Context, accountID int64, actor domain.Actor) error

	// ActivateAccount re-activates a deactivated account.
	ActivateAccount(ctx context.Context, accountID int64, actor domain.Actor) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
