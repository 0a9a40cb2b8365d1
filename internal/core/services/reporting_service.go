package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
	"github.com/branchbooks/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ReportingService derives ledger reports from journal lines. Balances are
// never stored; every figure here is computed from line sums at read time.
type ReportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(logger *slog.Logger, reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade) *ReportingService {
	return &ReportingService{
		BaseService:   NewBaseService(logger),
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// TrialBalance derives per-account net balances as of a date. Each account's
// net lands in exactly one column: the debit column when debits exceed
// credits, the credit column otherwise. Net-zero accounts are omitted.
//
// IsBalanced must hold for any ledger built from balanced entries. A false
// value means corrupted storage; it is logged and surfaced, never corrected.
func (s *ReportingService) TrialBalance(ctx context.Context, caller domain.Caller, asOf time.Time) (*domain.TrialBalance, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		AsOfDate:     asOf,
		Lines:        make([]domain.TrialBalanceLine, 0, len(rows)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, row := range rows {
		net := row.Debit.Sub(row.Credit)
		if net.IsZero() {
			continue
		}

		line := domain.TrialBalanceLine{
			AccountID:     row.AccountID,
			AccountName:   row.AccountName,
			AccountType:   row.AccountType,
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}
		if net.IsPositive() {
			line.DebitBalance = net
			tb.TotalDebits = tb.TotalDebits.Add(net)
		} else {
			line.CreditBalance = net.Abs()
			tb.TotalCredits = tb.TotalCredits.Add(net.Abs())
		}
		tb.Lines = append(tb.Lines, line)
	}

	tb.IsBalanced = tb.TotalDebits.Equal(tb.TotalCredits)
	if !tb.IsBalanced {
		s.LogError(ctx, "Trial balance does not balance, ledger storage is corrupt",
			slog.Time("as_of", asOf),
			slog.String("total_debits", tb.TotalDebits.String()),
			slog.String("total_credits", tb.TotalCredits.String()),
		)
	}

	return tb, nil
}

// AccountBalance derives the balance of one account as of a date.
func (s *ReportingService) AccountBalance(ctx context.Context, caller domain.Caller, accountID string, asOf time.Time) (*dto.AccountBalanceResponse, error) {
	row, err := s.reportingRepo.GetAccountBalanceData(ctx, accountID, asOf)
	if err != nil {
		return nil, err
	}

	return &dto.AccountBalanceResponse{
		AccountID: row.AccountID,
		AsOfDate:  asOf,
		Debits:    row.Debit,
		Credits:   row.Credit,
		Net:       row.Debit.Sub(row.Credit),
	}, nil
}
