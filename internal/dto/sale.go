package dto

import (
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the payload for registering a receivable. The total
// is immutable after creation; payments are applied separately.
type CreateSaleRequest struct {
	MemoNo              string          `json:"memoNo"`
	CustomerID          string          `json:"customerID" binding:"required"`
	CurrencyCode        string          `json:"currencyCode" binding:"required,len=3"`
	TotalAmount         decimal.Decimal `json:"totalAmount" binding:"required"`
	ReceivableAccountID string          `json:"receivableAccountID" binding:"required"`
}

// ApplyPaymentRequest is the payload for applying a payment to a sale.
type ApplyPaymentRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference *string         `json:"reference,omitempty"`
}

// PaymentResponse defines the data returned for a single payment.
type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference *string         `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID              string            `json:"saleID"`
	BranchID            string            `json:"branchID"`
	MemoNo              string            `json:"memoNo,omitempty"`
	CustomerID          string            `json:"customerID"`
	CurrencyCode        string            `json:"currencyCode"`
	TotalAmount         decimal.Decimal   `json:"totalAmount"`
	ReceivableAccountID string            `json:"receivableAccountID"`
	PaymentType         string            `json:"paymentType"`
	Payments            []PaymentResponse `json:"payments,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
}

// ApplyPaymentResponse is returned by a successful payment application.
type ApplyPaymentResponse struct {
	SaleID           string          `json:"saleID"`
	PaymentID        string          `json:"paymentID"`
	PaidAmountAfter  decimal.Decimal `json:"paidAmountAfter"`
	OutstandingAfter decimal.Decimal `json:"outstandingAfter"`
	PaymentType      string          `json:"paymentType"`
}

// ListSalesParams holds parameters for listing sales.
type ListSalesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListSalesResponse is a page of sales.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		AccountID: p.AccountID,
		Amount:    p.Amount,
		Currency:  p.CurrencyCode,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

// ToSaleResponse converts a domain.Sale to its response DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:              s.SaleID,
		BranchID:            s.BranchID,
		MemoNo:              s.MemoNo,
		CustomerID:          s.CustomerID,
		CurrencyCode:        s.CurrencyCode,
		TotalAmount:         s.TotalAmount,
		ReceivableAccountID: s.ReceivableAccountID,
		PaymentType:         string(s.PaymentType),
		CreatedAt:           s.CreatedAt,
	}
	if len(s.Payments) > 0 {
		resp.Payments = make([]PaymentResponse, len(s.Payments))
		for i := range s.Payments {
			resp.Payments[i] = ToPaymentResponse(&s.Payments[i])
		}
	}
	return resp
}

// ToApplyPaymentResponse converts a domain.PaymentResult to its response DTO.
func ToApplyPaymentResponse(r *domain.PaymentResult) ApplyPaymentResponse {
	return ApplyPaymentResponse{
		SaleID:           r.SaleID,
		PaymentID:        r.PaymentID,
		PaidAmountAfter:  r.PaidAmountAfter,
		OutstandingAfter: r.OutstandingAfter,
		PaymentType:      string(r.PaymentType),
	}
}
