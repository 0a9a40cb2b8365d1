package repositories

import (
	"context"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for accounts.
// Accounts are lookup data for the ledger core: balances are never stored on
// them, only derived from journal lines by the reporting repository.
type AccountRepositoryFacade interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves a single account.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. A missing
	// ID is simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}
