package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/flowcounts/backend/internal/core/domain"
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	"github.com/flowcounts/backend/internal/models"
	"github.com/flowcounts/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new reporting repository
func NewReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetReportSnapshot aggregates approved movement per active account in one
// query so every report shape derives from the same consistent read. Each
// account gets three debit/credit bucket pairs: everything up to asOf,
// movement inside [from, to], and movement strictly before from.
func (r *reportingRepository) GetReportSnapshot(ctx context.Context, asOf, from, to time.Time) (*domain.ReportSnapshot, error) {
	query := `
		SELECT
			a.account_id, a.number, a.name, a.description, a.category, a.subcategory,
			a.normal_side, a.statement, a.display_order, a.comment, a.initial_balance,
			a.balance, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
			COALESCE(SUM(l.debit) FILTER (WHERE e.entry_date <= $1), 0) AS debits_as_of,
			COALESCE(SUM(l.credit) FILTER (WHERE e.entry_date <= $1), 0) AS credits_as_of,
			COALESCE(SUM(l.debit) FILTER (WHERE e.entry_date >= $2 AND e.entry_date <= $3), 0) AS debits_in_range,
			COALESCE(SUM(l.credit) FILTER (WHERE e.entry_date >= $2 AND e.entry_date <= $3), 0) AS credits_in_range,
			COALESCE(SUM(l.debit) FILTER (WHERE e.entry_date < $2), 0) AS debits_before,
			COALESCE(SUM(l.credit) FILTER (WHERE e.entry_date < $2), 0) AS credits_before
		FROM accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries e ON e.entry_id = l.entry_id AND e.status = 'APPROVED'
		WHERE a.is_active = TRUE
		GROUP BY a.account_id
		ORDER BY
			CASE a.category
				WHEN 'ASSET' THEN 0
				WHEN 'LIABILITY' THEN 1
				WHEN 'EQUITY' THEN 2
				WHEN 'REVENUE' THEN 3
				WHEN 'EXPENSE' THEN 4
				ELSE 5
			END,
			a.display_order,
			a.number::bigint;
	`

	rows, err := r.Pool.Query(ctx, query, asOf, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying report snapshot: %w", err)
	}
	defer rows.Close()

	snapshot := &domain.ReportSnapshot{
		AsOf: asOf,
		From: from,
		To:   to,
		Rows: []domain.ReportAccountRow{},
	}

	for rows.Next() {
		var m models.Account
		var row domain.ReportAccountRow
		if err := rows.Scan(
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
			&row.DebitsAsOf,
			&row.CreditsAsOf,
			&row.DebitsInRange,
			&row.CreditsInRange,
			&row.DebitsBefore,
			&row.CreditsBefore,
		); err != nil {
			return nil, fmt.Errorf("error scanning report snapshot row: %w", err)
		}
		row.Account = mapping.ToDomainAccount(m)
		snapshot.Rows = append(snapshot.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report snapshot rows: %w", err)
	}

	return snapshot, nil
}
