package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
)

// BranchAuthorizer is the default transfer authorization rule: admins may
// move value between any accounts, everyone else only between accounts of
// their own branch.
type BranchAuthorizer struct {
	BaseService
}

// NewBranchAuthorizer creates the default branch-scoped transfer authorizer.
func NewBranchAuthorizer(logger *slog.Logger) *BranchAuthorizer {
	return &BranchAuthorizer{BaseService: NewBaseService(logger)}
}

var _ portssvc.BranchAuthorizerSvc = (*BranchAuthorizer)(nil)

// AuthorizeAccountTransfer returns apperrors.ErrForbidden when a non-admin
// caller touches an account outside their branch.
func (a *BranchAuthorizer) AuthorizeAccountTransfer(ctx context.Context, caller domain.Caller, accounts []domain.Account) error {
	if caller.Admin {
		return nil
	}

	for _, account := range accounts {
		if account.BranchID != caller.BranchID {
			a.GetLogger(ctx).Warn("Account transfer denied",
				slog.String("user_id", caller.UserID),
				slog.String("caller_branch", caller.BranchID),
				slog.String("account_id", account.AccountID),
				slog.String("account_branch", account.BranchID),
			)
			return fmt.Errorf("%w: account %s belongs to another branch", apperrors.ErrForbidden, account.AccountID)
		}
	}
	return nil
}
