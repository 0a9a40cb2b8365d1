package pgsql

import (
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(pool),
		JournalRepo:   newPgxJournalRepository(pool),
		SaleRepo:      newPgxSaleRepository(pool),
		ReportingRepo: newPgxReportingRepository(pool),
	}
}
