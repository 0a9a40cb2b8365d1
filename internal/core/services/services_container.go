package services

import (
	"log/slog"

	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services over the repository provider.
func NewServiceContainer(logger *slog.Logger, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	authorizer := NewBranchAuthorizer(logger)

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(logger, repos.AccountRepo),
		Journal:   NewJournalService(logger, repos.JournalRepo, repos.AccountRepo, authorizer),
		Sale:      NewSaleService(logger, repos.SaleRepo, repos.AccountRepo),
		Payment:   NewPaymentService(logger, repos.SaleRepo, repos.JournalRepo, repos.AccountRepo),
		Reporting: NewReportingService(logger, repos.ReportingRepo, repos.AccountRepo),
	}
}
