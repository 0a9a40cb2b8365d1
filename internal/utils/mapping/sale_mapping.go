package mapping

import (
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:              d.SaleID,
		BranchID:            d.BranchID,
		MemoNo:              d.MemoNo,
		CustomerID:          d.CustomerID,
		CurrencyCode:        d.CurrencyCode,
		TotalAmount:         d.TotalAmount,
		ReceivableAccountID: d.ReceivableAccountID,
		PaymentType:         string(d.PaymentType),
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:              m.SaleID,
		BranchID:            m.BranchID,
		MemoNo:              m.MemoNo,
		CustomerID:          m.CustomerID,
		CurrencyCode:        m.CurrencyCode,
		TotalAmount:         m.TotalAmount,
		ReceivableAccountID: m.ReceivableAccountID,
		PaymentType:         domain.PaymentType(m.PaymentType),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleSlice converts a slice of model Sales to domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:    d.PaymentID,
		SaleID:       d.SaleID,
		AccountID:    d.AccountID,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		Reference:    d.Reference,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:    m.PaymentID,
		SaleID:       m.SaleID,
		AccountID:    m.AccountID,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		Reference:    m.Reference,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
