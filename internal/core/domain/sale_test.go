package domain_test

import (
	"testing"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var epsilon = decimal.New(1, -2) // 0.01

func TestSale_Outstanding(t *testing.T) {
	sale := domain.Sale{TotalAmount: decimal.NewFromInt(100)}

	assert.True(t, sale.Outstanding(decimal.Zero).Equal(decimal.NewFromInt(100)))
	assert.True(t, sale.Outstanding(decimal.NewFromInt(40)).Equal(decimal.NewFromInt(60)))
	assert.True(t, sale.Outstanding(decimal.NewFromInt(100)).IsZero())

	// floored at zero even if payments somehow exceed the total
	assert.True(t, sale.Outstanding(decimal.NewFromInt(101)).IsZero())
}

func TestDerivePaymentType(t *testing.T) {
	tests := []struct {
		name        string
		outstanding string
		want        domain.PaymentType
	}{
		{"exactly zero", "0", domain.Full},
		{"within epsilon", "0.01", domain.Full},
		{"just beyond epsilon", "0.011", domain.Partial},
		{"clearly outstanding", "40", domain.Partial},
		{"negative within epsilon", "-0.01", domain.Full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePaymentType(decimal.RequireFromString(tt.outstanding), epsilon)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJournalLine_IsDebit(t *testing.T) {
	assert.True(t, domain.JournalLine{Debit: decimal.NewFromInt(5)}.IsDebit())
	assert.False(t, domain.JournalLine{Credit: decimal.NewFromInt(5)}.IsDebit())
}

func TestReferenceType_IsValid(t *testing.T) {
	assert.True(t, domain.RefSalePayment.IsValid())
	assert.True(t, domain.RefAccountTransfer.IsValid())
	assert.True(t, domain.RefManual.IsValid())
	assert.False(t, domain.ReferenceType("REFUND").IsValid())
}

func TestAccountType_IsValid(t *testing.T) {
	assert.True(t, domain.Asset.IsValid())
	assert.False(t, domain.AccountType("CONTRA").IsValid())
}
