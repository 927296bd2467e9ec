package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	"github.com/flowcounts/backend/internal/models"
	"github.com/flowcounts/backend/internal/utils/accounting"
	"github.com/flowcounts/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, entry_date, description, status, reviewed_by, reviewed_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit, credit, description, line_order`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewPgxJournalRepository creates a new repository for journal entry data.
// The account repository is needed to lock account rows while posting.
func NewPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryWithTx) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLine(row pgx.Row) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.LineOrder,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// insertLines queues one INSERT per line on a batch and sends it inside tx.
func (r *PgxJournalRepository) insertLines(ctx context.Context, tx pgx.Tx, entryID int64, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, account_id, debit, credit, description, line_order)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			entryID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.LineOrder,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %d: %w", entryID, err)
	}
	return nil
}

// SaveEntry persists a new entry header with its lines inside a transaction
// and returns the entry with its DB-assigned ID.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (entry_date, description, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING entry_id;
	`
	err = tx.QueryRow(ctx, headerQuery,
		m.EntryDate,
		m.Description,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert journal entry: %w", err)
	}

	for i := range entry.Lines {
		entry.Lines[i].EntryID = entry.EntryID
	}
	if err := r.insertLines(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves an entry header with its lines in line order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	headerQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, headerQuery, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %d: %w", entryID, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []int64{entryID})
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(*m)
	entry.Lines = lines[entryID]
	return &entry, nil
}

// findLinesByEntryIDs loads the lines for a set of entries, grouped by entry.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []int64) (map[int64][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[int64][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_order;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entries: %w", err)
	}
	defer rows.Close()

	linesByEntry := make(map[int64][]domain.JournalLine)
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], mapping.ToDomainJournalLine(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return linesByEntry, nil
}

// ListEntries retrieves entries newest-first, optionally filtered by status.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, status *domain.EntryStatus, limit, offset int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY entry_date DESC, entry_id DESC
		LIMIT $2 OFFSET $3;
	`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []int64{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
		entryIDs = append(entryIDs, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}

// lockedEntryLines reads an entry's lines through the transaction that holds
// the entry row lock, so they cannot change underneath the posting.
func lockedEntryLines(ctx context.Context, tx pgx.Tx, entryID int64) ([]domain.JournalLine, error) {
	rows, err := tx.Query(ctx, `SELECT account_id, debit, credit FROM journal_lines WHERE entry_id = $1 ORDER BY line_order;`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %d: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(&line.AccountID, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan line for entry %d: %w", entryID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines for entry %d: %w", entryID, err)
	}
	return lines, nil
}

// lockEntryStatus locks the entry row and returns its current status.
func lockEntryStatus(ctx context.Context, tx pgx.Tx, entryID int64) (models.EntryStatus, error) {
	var status models.EntryStatus
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock entry %d: %w", entryID, err)
	}
	return status, nil
}

// ReplaceEntry atomically rewrites an entry's header and line set. The entry
// must still be PENDING when the row lock is acquired.
func (r *PgxJournalRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if status != models.Pending {
		return fmt.Errorf("entry %d is %s: %w", entry.EntryID, status, apperrors.ErrStateTransition)
	}

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to update entry %d: %w", m.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete old lines for entry %d: %w", entry.EntryID, err)
	}
	if err := r.insertLines(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes an entry and its lines. The entry must still be PENDING
// when the row lock is acquired.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != models.Pending {
		return fmt.Errorf("entry %d is %s: %w", entryID, status, apperrors.ErrStateTransition)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %d: %w", entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// ApproveEntry posts an entry: within a single transaction it locks the entry
// row, verifies it is still PENDING, locks the touched accounts in a stable
// order, requires every one of them active, computes the balance deltas from
// the locked rows' normal sides, applies them, and stamps the review. A
// concurrent approval that loses the row-lock race observes a non-PENDING
// status and gets ErrStateTransition; nothing it did is kept. The deltas are
// derived inside the transaction so a normal-side change or deactivation that
// happened after submission cannot slip through.
func (r *PgxJournalRepository) ApproveEntry(ctx context.Context, entryID int64, reviewedBy string, reviewedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != models.Pending {
		return fmt.Errorf("entry %d is %s: %w", entryID, status, apperrors.ErrStateTransition)
	}

	lines, err := lockedEntryLines(ctx, tx, entryID)
	if err != nil {
		return err
	}

	accountIDs := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for entry %d: %w", entryID, err)
	}

	balanceChanges := make(map[int64]decimal.Decimal, len(accountIDs))
	for _, line := range lines {
		account := accounts[line.AccountID]
		if !account.IsActive {
			return fmt.Errorf("cannot post entry %d: account %s is inactive", entryID, account.Number)
		}
		delta, err := accounting.SignedDelta(line, account.NormalSide)
		if err != nil {
			return fmt.Errorf("cannot post entry %d: %w", entryID, err)
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(delta)
	}

	batch := &pgx.Batch{}
	balanceQuery := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for accID, delta := range balanceChanges {
		batch.Queue(balanceQuery, accID, delta, reviewedAt, reviewedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to apply balance changes for entry %d: %w", entryID, err)
	}

	statusQuery := `
		UPDATE journal_entries
		SET status = $2, reviewed_by = $3, reviewed_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, entryID, models.Approved, reviewedBy, reviewedAt); err != nil {
		return fmt.Errorf("failed to mark entry %d approved: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// RejectEntry marks a PENDING entry rejected with a reason. No balances move.
func (r *PgxJournalRepository) RejectEntry(ctx context.Context, entryID int64, reason string, reviewedBy string, reviewedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != models.Pending {
		return fmt.Errorf("entry %d is %s: %w", entryID, status, apperrors.ErrStateTransition)
	}

	statusQuery := `
		UPDATE journal_entries
		SET status = $2, rejection_reason = $3, reviewed_by = $4, reviewed_at = $5, last_updated_at = $5, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, entryID, models.Rejected, reason, reviewedBy, reviewedAt); err != nil {
		return fmt.Errorf("failed to mark entry %d rejected: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// ListApprovedLinesByAccount retrieves the approved lines touching an account
// in posting order, optionally windowed by entry date.
func (r *PgxJournalRepository) ListApprovedLinesByAccount(ctx context.Context, accountID int64, from, to *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, e.entry_date, e.description, l.description, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.status = 'APPROVED'
		  AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
		  AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
		ORDER BY e.entry_date, e.entry_id, l.line_order;
	`

	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %d: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var line domain.LedgerLine
		if err := rows.Scan(
			&line.EntryID,
			&line.EntryDate,
			&line.EntryDescription,
			&line.LineDescription,
			&line.Debit,
			&line.Credit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger line rows: %w", err)
	}
	return lines, nil
}

// SumApprovedMovementBefore returns the account's approved debit and credit
// totals strictly before the given date.
func (r *PgxJournalRepository) SumApprovedMovementBefore(ctx context.Context, accountID int64, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.status = 'APPROVED'
		  AND e.entry_date < $2;
	`

	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, before).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum movement for account %d: %w", accountID, err)
	}
	return debits, credits, nil
}
