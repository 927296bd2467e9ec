package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	"github.com/flowcounts/backend/internal/models"
	"github.com/flowcounts/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, number, name, description, category, subcategory, normal_side, statement, display_order, comment, initial_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the facade with transactions
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Number,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.Subcategory,
		&m.NormalSide,
		&m.Statement,
		&m.DisplayOrder,
		&m.Comment,
		&m.InitialBalance,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account and returns it with its assigned ID.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (number, name, description, category, subcategory, normal_side, statement, display_order, comment, initial_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Number,
		m.Name,
		m.Description,
		m.Category,
		m.Subcategory,
		m.NormalSide,
		m.Statement,
		m.DisplayOrder,
		m.Comment,
		m.InitialBalance,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&account.AccountID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("account with number %s already exists: %w", m.Number, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", m.Number, err)
	}
	return &account, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByNumber retrieves an account by its unique account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE number = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", number, err)
	}
	return acc, nil
}

func collectAccountsMap(rows pgx.Rows) (map[int64]domain.Account, error) {
	defer rows.Close()
	accountsMap := make(map[int64]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accountsMap[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsMap, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// Missing IDs are simply absent from the map; the caller decides whether
// that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	return collectAccountsMap(rows)
}

// ListAccounts retrieves the chart of accounts in presentation order:
// category (assets first), display order, then numeric account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ($1 OR is_active = TRUE)
		ORDER BY
			CASE category
				WHEN 'ASSET' THEN 0
				WHEN 'LIABILITY' THEN 1
				WHEN 'EQUITY' THEN 2
				WHEN 'REVENUE' THEN 3
				WHEN 'EXPENSE' THEN 4
				ELSE 5
			END,
			display_order,
			number::bigint;
	`

	rows, err := r.Pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates the mutable metadata fields of an account.
// Balance and initial balance are deliberately excluded; only the posting
// path writes balances.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, category = $4, subcategory = $5, normal_side = $6, statement = $7, display_order = $8, comment = $9, last_updated_at = $10, last_updated_by = $11
		WHERE account_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.Category,
		m.Subcategory,
		m.NormalSide,
		m.Statement,
		m.DisplayOrder,
		m.Comment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %d: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetAccountActive flips the activation flag.
func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, accountID int64, active bool, updatedBy string) error {
	query := `
		UPDATE accounts
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND is_active <> $2;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, accountID, active, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set account %d active=%t: %w", accountID, active, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account does not exist or the flag already had the
		// requested value; distinguish for the caller.
		if _, findErr := r.FindAccountByID(ctx, accountID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("account %d already has is_active=%t: %w", accountID, active, apperrors.ErrConflict)
	}
	return nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows for update. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}

	// Stable lock order prevents deadlocks between concurrent approvals.
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	accountsMap, err := collectAccountsMap(rows)
	if err != nil {
		return nil, err
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []int64{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("could not find or lock all requested accounts, missing %v: %w", missing, apperrors.ErrNotFound)
	}

	return accountsMap, nil
}
