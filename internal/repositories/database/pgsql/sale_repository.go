package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/branchbooks/ledger_backend/internal/models"
	"github.com/branchbooks/ledger_backend/internal/utils/mapping"
	"github.com/branchbooks/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgLockNotAvailable is the Postgres error code raised by FOR UPDATE NOWAIT
// when another transaction already holds the row lock.
const pgLockNotAvailable = "55P03"

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale and payment data.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryWithTx {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SaleRepositoryWithTx = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, branch_id, memo_no, customer_id, currency_code, total_amount, receivable_account_id, payment_type, created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `payment_id, sale_id, account_id, amount, currency_code, reference, created_at, created_by`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.BranchID,
		&m.MemoNo,
		&m.CustomerID,
		&m.CurrencyCode,
		&m.TotalAmount,
		&m.ReceivableAccountID,
		&m.PaymentType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSale persists a new sale row.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	modelSale := mapping.ToModelSale(sale)
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSale.SaleID,
		modelSale.BranchID,
		modelSale.MemoNo,
		modelSale.CustomerID,
		modelSale.CurrencyCode,
		modelSale.TotalAmount,
		modelSale.ReceivableAccountID,
		modelSale.PaymentType,
		modelSale.CreatedAt,
		modelSale.CreatedBy,
		modelSale.LastUpdatedAt,
		modelSale.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert sale "+modelSale.SaleID, err)
	}
	return nil
}

// FindSaleByID retrieves a sale header without locking.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE sale_id = $1;
	`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale by ID "+saleID, err)
	}

	domainSale := mapping.ToDomainSale(m)
	return &domainSale, nil
}

// FindSaleForUpdate reads the sale row under FOR UPDATE NOWAIT on the
// caller's transaction. A held lock surfaces as apperrors.ErrSaleBusy rather
// than blocking the connection.
func (r *PgxSaleRepository) FindSaleForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE sale_id = $1
		FOR UPDATE NOWAIT;
	`
	m, err := scanSale(tx.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
			return nil, apperrors.ErrSaleBusy
		}
		return nil, apperrors.NewAppError(500, "failed to lock sale "+saleID, err)
	}

	domainSale := mapping.ToDomainSale(m)
	return &domainSale, nil
}

func (r *PgxSaleRepository) findPayments(ctx context.Context, q rowQuerier, saleID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE sale_id = $1
		ORDER BY created_at ASC, payment_id ASC;
	`
	rows, err := q.Query(ctx, query, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for sale "+saleID, err)
	}
	defer rows.Close()

	var modelPayments []models.Payment
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID,
			&m.SaleID,
			&m.AccountID,
			&m.Amount,
			&m.CurrencyCode,
			&m.Reference,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		modelPayments = append(modelPayments, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	return mapping.ToDomainPaymentSlice(modelPayments), nil
}

// FindPaymentsBySaleID retrieves all payments applied to a sale, oldest first.
func (r *PgxSaleRepository) FindPaymentsBySaleID(ctx context.Context, saleID string) ([]domain.Payment, error) {
	return r.findPayments(ctx, r.Pool, saleID)
}

// FindPaymentsBySaleIDTx reads payments inside the caller's transaction, so
// the sum seen is consistent with the locked sale row.
func (r *PgxSaleRepository) FindPaymentsBySaleIDTx(ctx context.Context, tx pgx.Tx, saleID string) ([]domain.Payment, error) {
	return r.findPayments(ctx, tx, saleID)
}

// InsertPaymentTx appends a payment row on the caller's transaction.
func (r *PgxSaleRepository) InsertPaymentTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	modelPayment := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		modelPayment.PaymentID,
		modelPayment.SaleID,
		modelPayment.AccountID,
		modelPayment.Amount,
		modelPayment.CurrencyCode,
		modelPayment.Reference,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+modelPayment.PaymentID, err)
	}
	return nil
}

// UpdateSalePaymentTypeTx persists the derived payment lifecycle state.
func (r *PgxSaleRepository) UpdateSalePaymentTypeTx(ctx context.Context, tx pgx.Tx, saleID string, paymentType domain.PaymentType, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE sales
		SET payment_type = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	tag, err := tx.Exec(ctx, query, saleID, string(paymentType), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment type for sale "+saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("sale not found: " + saleID)
	}
	return nil
}

// ListSales retrieves sales newest first using a created_at cursor. It
// fetches limit+1 rows to decide whether another page exists.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
	`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		createdAt, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE created_at < $1`
		args = append(args, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()

	var modelSales []models.Sale
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sale row", err)
		}
		modelSales = append(modelSales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}

	var newNextToken *string
	if len(modelSales) > limit {
		token := pagination.EncodeDateBasedToken(modelSales[limit-1].CreatedAt)
		newNextToken = &token
		modelSales = modelSales[:limit]
	}

	return mapping.ToDomainSaleSlice(modelSales), newNextToken, nil
}
