package services

import (
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The dispatcher goes first so every service can emit events through it.
	container.Events = NewEventDispatcher()

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountEventPublisher(container.Events),
	)

	journalRepo, ok := repos.JournalRepo.(portsrepo.JournalRepositoryWithTx)
	if !ok {
		// The posting path needs transactional approval; a journal repository
		// without it cannot serve this application.
		panic("journal repository does not support transactions")
	}
	container.Journal = NewJournalService(
		journalRepo,
		container.Account,
		WithJournalEventPublisher(container.Events),
	)

	container.Ledger = NewLedgerService(repos.AccountRepo, repos.JournalRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
