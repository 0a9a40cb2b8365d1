package dto

import (
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceLineResponse is one reported account in a trial balance.
type TrialBalanceLineResponse struct {
	AccountID     string          `json:"accountID"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceResponse is the trial balance report payload.
type TrialBalanceResponse struct {
	AsOfDate     time.Time                  `json:"asOfDate"`
	Lines        []TrialBalanceLineResponse `json:"lines"`
	TotalDebits  decimal.Decimal            `json:"totalDebits"`
	TotalCredits decimal.Decimal            `json:"totalCredits"`
	IsBalanced   bool                       `json:"isBalanced"`
}

// AccountBalanceResponse is the derived balance of a single account.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOfDate  time.Time       `json:"asOfDate"`
	Debits    decimal.Decimal `json:"debits"`
	Credits   decimal.Decimal `json:"credits"`
	Net       decimal.Decimal `json:"net"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	lines := make([]TrialBalanceLineResponse, len(tb.Lines))
	for i, l := range tb.Lines {
		lines[i] = TrialBalanceLineResponse{
			AccountID:     l.AccountID,
			AccountName:   l.AccountName,
			AccountType:   string(l.AccountType),
			DebitBalance:  l.DebitBalance,
			CreditBalance: l.CreditBalance,
		}
	}
	return TrialBalanceResponse{
		AsOfDate:     tb.AsOfDate,
		Lines:        lines,
		TotalDebits:  tb.TotalDebits,
		TotalCredits: tb.TotalCredits,
		IsBalanced:   tb.IsBalanced,
	}
}
