package dto

import (
	"time"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one proposed line of an entry. Exactly one of
// debit/credit must be positive; the validator enforces this.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest is the payload for creating a journal entry.
type CreateJournalEntryRequest struct {
	ReferenceType *domain.ReferenceType      `json:"referenceType,omitempty"`
	ReferenceID   *string                    `json:"referenceID,omitempty"`
	Date          *time.Time                 `json:"date,omitempty"` // defaults to now
	CurrencyCode  string                     `json:"currencyCode" binding:"required,len=3"`
	Lines         []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest patches an entry. Header fields are patched
// independently; a non-nil Lines replaces the full line set after
// re-validation.
type UpdateJournalEntryRequest struct {
	ReferenceType *domain.ReferenceType       `json:"referenceType,omitempty"`
	ReferenceID   *string                     `json:"referenceID,omitempty"`
	Date          *time.Time                  `json:"date,omitempty"`
	Lines         *[]CreateJournalLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// JournalLineResponse defines the data returned for a single line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string                `json:"entryID"`
	ReferenceType *string               `json:"referenceType,omitempty"`
	ReferenceID   *string               `json:"referenceID,omitempty"`
	Date          time.Time             `json:"date"`
	CurrencyCode  string                `json:"currencyCode"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	IsBalanced    bool                  `json:"isBalanced"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
	IncludeLines bool    `form:"includeLines"`
}

// ListEntriesResponse is a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListLinesParams holds parameters for listing lines by account.
type ListLinesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListLinesResponse is a page of journal lines for one account.
type ListLinesResponse struct {
	Lines     []JournalLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalLineResponses converts a slice of domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		ReferenceID:  e.ReferenceID,
		Date:         e.EntryDate,
		CurrencyCode: e.CurrencyCode,
		TotalAmount:  e.TotalAmount,
		IsBalanced:   e.IsBalanced,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.LastUpdatedAt,
	}
	if e.ReferenceType != nil {
		refType := string(*e.ReferenceType)
		resp.ReferenceType = &refType
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToJournalLineResponses(e.Lines)
	}
	return resp
}
