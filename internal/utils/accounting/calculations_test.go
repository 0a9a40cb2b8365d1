package accounting

import (
	"errors"
	"testing"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debitLine(accountID string, amount float64) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.NewFromFloat(amount), Credit: decimal.Zero}
}

func creditLine(accountID string, amount float64) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.NewFromFloat(amount)}
}

func TestValidateEntryLines_Balanced(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("cash", 100),
		creditLine("revenue", 100),
	}

	err := ValidateEntryLines(lines)
	assert.NoError(t, err)
	assert.True(t, EntryAmount(lines).Equal(decimal.NewFromInt(100)))
}

func TestValidateEntryLines_BalancedMultiLine(t *testing.T) {
	// one debit split across two credits
	lines := []domain.JournalLine{
		debitLine("cash", 150),
		creditLine("revenue", 100),
		creditLine("tax-payable", 50),
	}

	assert.NoError(t, ValidateEntryLines(lines))
}

func TestValidateEntryLines_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("cash", 100),
		creditLine("revenue", 90),
	}

	err := ValidateEntryLines(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var ubErr *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &ubErr), "balance failure should carry the computed totals")
	assert.True(t, ubErr.Debits.Equal(decimal.NewFromInt(100)), "debits: %s", ubErr.Debits)
	assert.True(t, ubErr.Credits.Equal(decimal.NewFromInt(90)), "credits: %s", ubErr.Credits)
	assert.True(t, ubErr.Difference.Equal(decimal.NewFromInt(10)), "difference: %s", ubErr.Difference)
}

func TestValidateEntryLines_TooFewLines(t *testing.T) {
	err := ValidateEntryLines([]domain.JournalLine{debitLine("cash", 100)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = ValidateEntryLines(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateEntryLines_LineSideRules(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.JournalLine
	}{
		{
			name: "both sides zero",
			lines: []domain.JournalLine{
				{AccountID: "cash"},
				creditLine("revenue", 100),
			},
		},
		{
			name: "both sides positive",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
				creditLine("revenue", 100),
			},
		},
		{
			name: "negative debit",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: decimal.NewFromInt(-100)},
				creditLine("revenue", 100),
			},
		},
		{
			name: "negative credit",
			lines: []domain.JournalLine{
				debitLine("cash", 100),
				{AccountID: "revenue", Credit: decimal.NewFromInt(-100)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryLines(tt.lines)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestValidateEntryLines_ZeroSum(t *testing.T) {
	// no tolerance: a fraction of a cent off is unbalanced
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.RequireFromString("0.001")},
		{AccountID: "b", Credit: decimal.RequireFromString("0.002")},
	}
	err := ValidateEntryLines(lines)
	require.Error(t, err)

	var ubErr *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &ubErr))
	assert.True(t, ubErr.Difference.Equal(decimal.RequireFromString("-0.001")))
}

func TestComputeEntryTotals(t *testing.T) {
	totals := ComputeEntryTotals([]domain.JournalLine{
		debitLine("a", 70),
		debitLine("b", 30),
		creditLine("c", 100),
	})

	assert.True(t, totals.Debits.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals.Credits.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals.Difference.IsZero())
}

func TestSumPayments(t *testing.T) {
	payments := []domain.Payment{
		{Amount: decimal.RequireFromString("10.50")},
		{Amount: decimal.RequireFromString("4.50")},
	}
	assert.True(t, SumPayments(payments).Equal(decimal.NewFromInt(15)))
	assert.True(t, SumPayments(nil).IsZero())
}
