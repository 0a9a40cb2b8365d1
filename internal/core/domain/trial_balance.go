package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is the raw per-account debit/credit aggregate produced by
// the reporting repository before nets are derived.
type TrialBalanceRow struct {
	AccountID   string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalanceLine is one reported account with its net on the debit or
// credit side. Accounts whose net is zero are omitted from the report.
type TrialBalanceLine struct {
	AccountID     string          `json:"accountID"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalance is a report of net per-account balances as of a date, derived
// entirely from journal lines. IsBalanced must hold for any structurally
// valid ledger; a false value indicates a storage-layer defect.
type TrialBalance struct {
	AsOfDate     time.Time          `json:"asOfDate"`
	Lines        []TrialBalanceLine `json:"lines"`
	TotalDebits  decimal.Decimal    `json:"totalDebits"`
	TotalCredits decimal.Decimal    `json:"totalCredits"`
	IsBalanced   bool               `json:"isBalanced"`
}
