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

// SaleService manages sales (receivables).
type SaleService struct {
	BaseService
	saleRepo    portsrepo.SaleRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewSaleService creates a new SaleService.
func NewSaleService(logger *slog.Logger, saleRepo portsrepo.SaleRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) *SaleService {
	return &SaleService{
		BaseService: NewBaseService(logger),
		saleRepo:    saleRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.SaleSvcFacade = (*SaleService)(nil)

// CreateSale registers a receivable in the UNPAID state. The receivable
// account is validated here so payment application can trust it.
func (s *SaleService) CreateSale(ctx context.Context, caller domain.Caller, req dto.CreateSaleRequest) (*domain.Sale, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: sale total must be positive", apperrors.ErrValidation)
	}

	receivable, err := s.accountRepo.FindAccountByID(ctx, req.ReceivableAccountID)
	if err != nil {
		return nil, err
	}
	if !receivable.IsActive {
		return nil, fmt.Errorf("%w: receivable account %s is inactive", apperrors.ErrValidation, req.ReceivableAccountID)
	}
	if receivable.CurrencyCode != req.CurrencyCode {
		return nil, fmt.Errorf("%w: receivable account %s currency %s does not match sale currency %s",
			apperrors.ErrValidation, req.ReceivableAccountID, receivable.CurrencyCode, req.CurrencyCode)
	}

	now := time.Now()
	sale := domain.Sale{
		SaleID:              uuid.NewString(),
		BranchID:            caller.BranchID,
		MemoNo:              req.MemoNo,
		CustomerID:          req.CustomerID,
		CurrencyCode:        req.CurrencyCode,
		TotalAmount:         req.TotalAmount,
		ReceivableAccountID: req.ReceivableAccountID,
		PaymentType:         domain.Unpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		s.LogError(ctx, "Failed to save sale", slog.String("sale_id", sale.SaleID), slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("customer_id", sale.CustomerID),
		slog.String("total_amount", sale.TotalAmount.String()),
	)
	return &sale, nil
}

// GetSaleByID retrieves a sale with its payments.
func (s *SaleService) GetSaleByID(ctx context.Context, caller domain.Caller, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	payments, err := s.saleRepo.FindPaymentsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale.Payments = payments

	return sale, nil
}

// ListSales retrieves a page of sales.
func (s *SaleService) ListSales(ctx context.Context, caller domain.Caller, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	limit := normalizeLimit(params.Limit)

	sales, nextToken, err := s.saleRepo.ListSales(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListSalesResponse{
		Sales:     make([]dto.SaleResponse, len(sales)),
		NextToken: nextToken,
	}
	for i := range sales {
		resp.Sales[i] = dto.ToSaleResponse(&sales[i])
	}
	return resp, nil
}
