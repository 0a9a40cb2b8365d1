package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries row.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	ReferenceType *string         `db:"reference_type"` // Nullable
	ReferenceID   *string         `db:"reference_id"`   // Nullable
	EntryDate     time.Time       `db:"entry_date"`
	CurrencyCode  string          `db:"currency_code"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AuditFields
}

// JournalLine is the journal_lines row. Lines belong to exactly one entry
// and are deleted and recreated wholesale when the entry is updated.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
