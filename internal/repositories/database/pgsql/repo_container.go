package pgsql

import (
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories into the container
// the service layer consumes.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := NewPgxAccountRepository(dbPool)
	journalRepo := NewPgxJournalRepository(dbPool, accountRepo)
	reportingRepo := NewReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		ReportingRepo: reportingRepo,
	}
}
