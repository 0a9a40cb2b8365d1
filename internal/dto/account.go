package dto

import (
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
)

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required"`
	AccountType  domain.AccountType `json:"accountType" binding:"required"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3"`
	Description  string             `json:"description"`
}

// AccountResponse defines the data returned for an account. Balance is not
// part of the account payload; it is served by the reporting endpoints.
type AccountResponse struct {
	AccountID    string    `json:"accountID"`
	BranchID     string    `json:"branchID"`
	Name         string    `json:"name"`
	AccountType  string    `json:"accountType"`
	CurrencyCode string    `json:"currencyCode"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		BranchID:     a.BranchID,
		Name:         a.Name,
		AccountType:  string(a.AccountType),
		CurrencyCode: a.CurrencyCode,
		Description:  a.Description,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}
