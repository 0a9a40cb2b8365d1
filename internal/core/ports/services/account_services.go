package services

import (
	"context"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/dto"
)

// AccountSvcFacade defines account lookup and creation. The ledger core only
// needs accounts as opaque, branch-scoped references; taxonomy beyond the
// type enum lives outside this service.
type AccountSvcFacade interface {
	// CreateAccount registers an account in the caller's branch.
	CreateAccount(ctx context.Context, caller domain.Caller, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}
