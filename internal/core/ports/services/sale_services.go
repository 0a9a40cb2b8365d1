package services

import (
	"context"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/dto"
)

// SaleSvcFacade defines the sale (receivable) operations.
type SaleSvcFacade interface {
	// CreateSale registers a receivable in the UNPAID state.
	CreateSale(ctx context.Context, caller domain.Caller, req dto.CreateSaleRequest) (*domain.Sale, error)

	// GetSaleByID retrieves a sale with its payments.
	GetSaleByID(ctx context.Context, caller domain.Caller, saleID string) (*domain.Sale, error)

	// ListSales retrieves a page of sales.
	ListSales(ctx context.Context, caller domain.Caller, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}

// PaymentSvcFacade is the payment reconciler: it applies a payment against a
// sale's outstanding balance and posts the matching journal entry, all in
// one atomic unit.
type PaymentSvcFacade interface {
	// ApplyPayment applies a payment to a sale. Fails with
	// apperrors.ErrAlreadyPaid or apperrors.ErrOverpay (no state change),
	// apperrors.ErrSaleBusy (retryable lock contention) or
	// apperrors.ErrNotFound.
	ApplyPayment(ctx context.Context, caller domain.Caller, saleID string, req dto.ApplyPaymentRequest) (*domain.PaymentResult, error)
}
