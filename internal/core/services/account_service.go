package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
	"github.com/branchbooks/ledger_backend/internal/dto"
	"github.com/google/uuid"
)

// AccountService manages ledger accounts.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(logger *slog.Logger, accountRepo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{
		BaseService: NewBaseService(logger),
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount registers an account in the caller's branch.
func (s *AccountService) CreateAccount(ctx context.Context, caller domain.Caller, req dto.CreateAccountRequest) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		BranchID:     caller.BranchID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, "Failed to save account", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)),
		slog.String("branch_id", account.BranchID),
	)
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *AccountService) GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *AccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}
