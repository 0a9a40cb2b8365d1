package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceType links a journal entry back to the business event that caused
// it. Closed set; dispatch on it, never on free-form strings.
type ReferenceType string

const (
	RefSalePayment     ReferenceType = "SALE_PAYMENT"
	RefAccountTransfer ReferenceType = "ACCOUNT_TRANSFER"
	RefManual          ReferenceType = "MANUAL"
)

// IsValid reports whether r is one of the known reference types.
func (r ReferenceType) IsValid() bool {
	switch r {
	case RefSalePayment, RefAccountTransfer, RefManual:
		return true
	}
	return false
}

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Lines are owned exclusively by their entry: they are
// created with it, replaced wholesale on update and deleted with it.
type JournalEntry struct {
	EntryID       string         `json:"entryID"`
	ReferenceType *ReferenceType `json:"referenceType,omitempty"`
	ReferenceID   *string        `json:"referenceID,omitempty"`
	EntryDate     time.Time      `json:"entryDate"`
	CurrencyCode  string         `json:"currencyCode"`
	AuditFields

	// TotalAmount is the common debit/credit sum (one side, not both).
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsBalanced  bool            `json:"isBalanced"`
	Lines       []JournalLine   `json:"lines,omitempty"`
}

// JournalLine is one debit-or-credit movement against a single account
// within an entry. Exactly one of Debit/Credit is strictly positive and the
// other is exactly zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}

// IsDebit reports whether the line moves value on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}
