package repositories

import (
	"context"
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries over journal
// lines. Reports tolerate slightly stale snapshots, so these run outside any
// transaction at the pool's default isolation.
type ReportingRepository interface {
	// GetTrialBalanceData sums debit and credit per account over all lines
	// whose entry is dated on or before asOf.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetAccountBalanceData returns the debit/credit aggregate for a single account.
	GetAccountBalanceData(ctx context.Context, accountID string, asOf time.Time) (*domain.TrialBalanceRow, error)
}
