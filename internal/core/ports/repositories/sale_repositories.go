package repositories

import (
	"context"
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SaleReader defines read operations for sale and payment data
type SaleReader interface {
	// FindSaleByID retrieves a sale header.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindPaymentsBySaleID retrieves all payments applied to a sale, oldest first.
	FindPaymentsBySaleID(ctx context.Context, saleID string) ([]domain.Payment, error)

	// ListSales retrieves a paginated list of sales using token-based pagination.
	ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines write operations for sale and payment data. The *Tx
// variants take the caller's transaction: payment application must lock the
// sale row and keep every write in one atomic unit.
type SaleWriter interface {
	// SaveSale persists a new sale.
	SaveSale(ctx context.Context, sale domain.Sale) error

	// FindSaleForUpdate reads the sale row under a row-level lock without
	// waiting. Returns apperrors.ErrSaleBusy when another transaction holds
	// the lock, so callers can retry with backoff instead of blocking.
	FindSaleForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error)

	// FindPaymentsBySaleIDTx reads payments inside the caller's transaction.
	FindPaymentsBySaleIDTx(ctx context.Context, tx pgx.Tx, saleID string) ([]domain.Payment, error)

	// InsertPaymentTx appends a payment row. Payments are never updated or deleted.
	InsertPaymentTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// UpdateSalePaymentTypeTx persists the derived payment lifecycle state.
	UpdateSalePaymentTypeTx(ctx context.Context, tx pgx.Tx, saleID string, paymentType domain.PaymentType, updatedBy string, updatedAt time.Time) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}

// SaleRepositoryWithTx extends SaleRepositoryFacade with transaction capabilities
type SaleRepositoryWithTx interface {
	SaleRepositoryFacade
	TransactionManager
}
