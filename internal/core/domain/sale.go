package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType is the derived lifecycle state of a sale's payment status.
// UNPAID is only ever the initial state; once any payment succeeds the sale
// is PARTIAL or FULL as a pure function of the outstanding amount.
type PaymentType string

const (
	Unpaid  PaymentType = "UNPAID"
	Partial PaymentType = "PARTIAL"
	Full    PaymentType = "FULL"
)

// Sale is a receivable: an immutable total to be settled by payments.
type Sale struct {
	SaleID       string `json:"saleID"`
	BranchID     string `json:"branchID"`
	MemoNo       string `json:"memoNo"`
	CustomerID   string `json:"customerID"`
	CurrencyCode string `json:"currencyCode"`
	// TotalAmount is immutable once the sale is created.
	TotalAmount decimal.Decimal `json:"totalAmount"`
	// ReceivableAccountID is the clearing account credited when payments
	// against this sale are posted to the ledger.
	ReceivableAccountID string      `json:"receivableAccountID"`
	PaymentType         PaymentType `json:"paymentType"`
	AuditFields

	Payments []Payment `json:"payments,omitempty"`
}

// Outstanding returns the unpaid remainder given the sum of applied
// payments, floored at zero.
func (s Sale) Outstanding(paid decimal.Decimal) decimal.Decimal {
	out := s.TotalAmount.Sub(paid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// DerivePaymentType computes the lifecycle state from the outstanding
// amount. Within epsilon of zero counts as fully paid; epsilon only absorbs
// rounding at the last cent and never feeds back into ledger balancing.
func DerivePaymentType(outstanding, epsilon decimal.Decimal) PaymentType {
	if outstanding.Abs().LessThanOrEqual(epsilon) {
		return Full
	}
	return Partial
}

// Payment records one settlement applied to a sale. Payments are
// append-only: never updated or deleted once created.
type Payment struct {
	PaymentID    string          `json:"paymentID"`
	SaleID       string          `json:"saleID"`
	AccountID    string          `json:"accountID"` // receiving account
	Amount       decimal.Decimal `json:"amount"`    // strictly positive
	CurrencyCode string          `json:"currencyCode"`
	Reference    *string         `json:"reference,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// PaymentResult is returned by a successful payment application.
type PaymentResult struct {
	SaleID           string          `json:"saleID"`
	PaymentID        string          `json:"paymentID"`
	PaidAmountAfter  decimal.Decimal `json:"paidAmountAfter"`
	OutstandingAfter decimal.Decimal `json:"outstandingAfter"`
	PaymentType      PaymentType     `json:"paymentType"`
}
