package accounting

import (
	"fmt"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentEpsilon absorbs rounding at the last cent when comparing a payment
// against a sale's outstanding amount. It is never used for entry balancing,
// which is always exact.
var PaymentEpsilon = decimal.New(1, -2) // 0.01

// EntryTotals holds the computed sums for a proposed set of journal lines.
type EntryTotals struct {
	Debits     decimal.Decimal
	Credits    decimal.Decimal
	Difference decimal.Decimal
}

// ComputeEntryTotals sums the debit and credit sides of the proposed lines.
// Difference is Debits - Credits.
func ComputeEntryTotals(lines []domain.JournalLine) EntryTotals {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return EntryTotals{
		Debits:     debits,
		Credits:    credits,
		Difference: debits.Sub(credits),
	}
}

// ValidateEntryLines checks a proposed set of journal lines against the
// double-entry rules, in order:
//  1. at least two lines;
//  2. each line has exactly one strictly positive side, the other exactly zero;
//  3. sum(debit) equals sum(credit) exactly (no tolerance);
//  4. the common sum is strictly positive.
//
// Balance failures return an *apperrors.UnbalancedEntryError carrying the
// computed debits, credits and difference.
func ValidateEntryLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	}

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			// both zero or both positive
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit set", apperrors.ErrValidation, i)
		}
	}

	totals := ComputeEntryTotals(lines)
	if !totals.Debits.Equal(totals.Credits) {
		return &apperrors.UnbalancedEntryError{
			Debits:     totals.Debits,
			Credits:    totals.Credits,
			Difference: totals.Difference,
			Reason:     "entry debits and credits do not balance",
		}
	}
	if !totals.Debits.IsPositive() {
		return &apperrors.UnbalancedEntryError{
			Debits:     totals.Debits,
			Credits:    totals.Credits,
			Difference: totals.Difference,
			Reason:     "entry amount must be positive",
		}
	}
	return nil
}

// EntryAmount returns the true economic value of a balanced entry: the
// common debit/credit sum (one side, not both).
func EntryAmount(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}

// SumPayments totals the amounts of the given payments.
func SumPayments(payments []domain.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}
