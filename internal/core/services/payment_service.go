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
	"github.com/branchbooks/ledger_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

// PaymentService applies payments against sales and posts the matching
// journal entries. Everything happens inside one database transaction with
// the sale row locked, so two concurrent payments against the same sale can
// never both settle it.
type PaymentService struct {
	BaseService
	saleRepo    portsrepo.SaleRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(logger *slog.Logger, saleRepo portsrepo.SaleRepositoryWithTx, journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) *PaymentService {
	return &PaymentService{
		BaseService: NewBaseService(logger),
		saleRepo:    saleRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// ApplyPayment applies a payment to a sale and posts the ledger entry.
//
// The whole operation is atomic: the sale row is locked first, guards run
// against the locked state, and the payment row, payment type update and
// journal entry all commit together or not at all. Guard rejections roll the
// transaction back, leaving no partial payment and no orphan entry.
func (s *PaymentService) ApplyPayment(ctx context.Context, caller domain.Caller, saleID string, req dto.ApplyPaymentRequest) (*domain.PaymentResult, error) {
	logger := s.GetLogger(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	receivingAccount, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !receivingAccount.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.saleRepo.Rollback(ctx, tx) }()

	// Lock the sale row. A concurrent payment holding the lock surfaces as
	// ErrSaleBusy so callers can retry instead of queueing on the row.
	sale, err := s.saleRepo.FindSaleForUpdate(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}

	if receivingAccount.CurrencyCode != sale.CurrencyCode {
		return nil, fmt.Errorf("%w: account %s currency %s does not match sale currency %s",
			apperrors.ErrValidation, req.AccountID, receivingAccount.CurrencyCode, sale.CurrencyCode)
	}

	payments, err := s.saleRepo.FindPaymentsBySaleIDTx(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}
	paid := accounting.SumPayments(payments)
	outstanding := sale.TotalAmount.Sub(paid)

	if outstanding.LessThanOrEqual(accounting.PaymentEpsilon) {
		return nil, apperrors.ErrAlreadyPaid
	}
	if req.Amount.GreaterThan(outstanding.Add(accounting.PaymentEpsilon)) {
		return nil, apperrors.ErrOverpay
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		SaleID:       saleID,
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		CurrencyCode: sale.CurrencyCode,
		Reference:    req.Reference,
		CreatedAt:    now,
		CreatedBy:    caller.UserID,
	}
	if err := s.saleRepo.InsertPaymentTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	// Re-read inside the transaction so the new state is derived from what
	// is actually stored, not from local arithmetic.
	paymentsAfter, err := s.saleRepo.FindPaymentsBySaleIDTx(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}
	paidAfter := accounting.SumPayments(paymentsAfter)
	outstandingAfter := sale.TotalAmount.Sub(paidAfter)

	// Unreachable while the overpay guard holds. If it ever trips, the
	// ledger must not be patched around it; abort and investigate.
	if outstandingAfter.LessThan(accounting.PaymentEpsilon.Neg()) {
		logger.Error("Sale outstanding went negative, aborting payment",
			slog.String("sale_id", saleID),
			slog.String("outstanding", outstandingAfter.String()),
		)
		return nil, apperrors.ErrNegativeOutstanding
	}

	paymentType := domain.DerivePaymentType(outstandingAfter, accounting.PaymentEpsilon)
	if err := s.saleRepo.UpdateSalePaymentTypeTx(ctx, tx, saleID, paymentType, caller.UserID, now); err != nil {
		return nil, err
	}

	entry, lines := buildPaymentEntry(sale, payment, caller, now)
	if err := s.journalRepo.SaveEntryTx(ctx, tx, entry, lines); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payment applied",
		slog.String("sale_id", saleID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("payment_type", string(paymentType)),
		slog.String("entry_id", entry.EntryID),
	)

	return &domain.PaymentResult{
		SaleID:           saleID,
		PaymentID:        payment.PaymentID,
		PaidAmountAfter:  paidAfter,
		OutstandingAfter: sale.Outstanding(paidAfter),
		PaymentType:      paymentType,
	}, nil
}

// buildPaymentEntry constructs the two-line journal entry for a payment:
// debit the receiving account, credit the sale's receivable account.
func buildPaymentEntry(sale *domain.Sale, payment domain.Payment, caller domain.Caller, now time.Time) (domain.JournalEntry, []domain.JournalLine) {
	entryID := uuid.NewString()
	refType := domain.RefSalePayment
	refID := sale.SaleID

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     caller.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: caller.UserID,
	}

	lines := []domain.JournalLine{
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   payment.AccountID,
			Debit:       payment.Amount,
			Description: "Payment received for sale " + sale.SaleID,
			AuditFields: audit,
		},
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   sale.ReceivableAccountID,
			Credit:      payment.Amount,
			Description: "Receivable settled for sale " + sale.SaleID,
			AuditFields: audit,
		},
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		EntryDate:     now,
		CurrencyCode:  sale.CurrencyCode,
		TotalAmount:   payment.Amount,
		IsBalanced:    true,
		Lines:         lines,
		AuditFields:   audit,
	}
	return entry, lines
}
