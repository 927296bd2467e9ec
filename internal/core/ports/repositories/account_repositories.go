package repositories

import (
	"context"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its unique account number.
	FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts for the given IDs, keyed by ID.
	// Missing IDs are absent from the map, not an error.
	FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves the chart of accounts in presentation order:
	// category, then display order, then numeric account number.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account and returns it with its assigned ID.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccount updates the mutable metadata fields of an account.
	// Balance and initial balance are never written through this path.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the activation flag.
	SetAccountActive(ctx context.Context, accountID int64, active bool, updatedBy string) error
}

// AccountLockReader defines in-transaction account access for the posting path
type AccountLockReader interface {
	// FindAccountsByIDsForUpdate locks and retrieves accounts within tx.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []int64) (map[int64]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLockReader
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
