package services

import (
	"context"
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/dto"
)

// ReportingSvcFacade defines read-only ledger reports.
type ReportingSvcFacade interface {
	// TrialBalance derives per-account net balances as of a date.
	TrialBalance(ctx context.Context, caller domain.Caller, asOf time.Time) (*domain.TrialBalance, error)

	// AccountBalance derives the balance of one account as of a date.
	AccountBalance(ctx context.Context, caller domain.Caller, accountID string, asOf time.Time) (*dto.AccountBalanceResponse, error)
}
