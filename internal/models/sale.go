package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the sales row.
type Sale struct {
	SaleID              string          `db:"sale_id"`
	BranchID            string          `db:"branch_id"`
	MemoNo              string          `db:"memo_no"`
	CustomerID          string          `db:"customer_id"`
	CurrencyCode        string          `db:"currency_code"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	ReceivableAccountID string          `db:"receivable_account_id"`
	PaymentType         string          `db:"payment_type"`
	AuditFields
}

// Payment is the payments row. Append-only.
type Payment struct {
	PaymentID    string          `db:"payment_id"`
	SaleID       string          `db:"sale_id"`
	AccountID    string          `db:"account_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	Reference    *string         `db:"reference"` // Nullable
	CreatedAt    time.Time       `db:"created_at"`
	CreatedBy    string          `db:"created_by"`
}
