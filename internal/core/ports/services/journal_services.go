package services

import (
	"context"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/dto"
)

// JournalSvcFacade defines the journal entry operations of the ledger core.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a new balanced entry with its lines.
	CreateEntry(ctx context.Context, caller domain.Caller, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, caller domain.Caller, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries.
	ListEntries(ctx context.Context, caller domain.Caller, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// UpdateEntry patches header fields and optionally replaces the line set
	// under re-validation.
	UpdateEntry(ctx context.Context, caller domain.Caller, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error)

	// DeleteEntry removes the entry and all of its lines.
	DeleteEntry(ctx context.Context, caller domain.Caller, entryID string) error

	// ListLinesByAccount retrieves a page of lines touching one account.
	ListLinesByAccount(ctx context.Context, caller domain.Caller, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}

// BranchAuthorizerSvc is the injected predicate guarding branch-scoped
// account transfers. It is the single place ledger logic depends on caller
// identity, keeping the core decoupled from the wider permission system.
type BranchAuthorizerSvc interface {
	// AuthorizeAccountTransfer returns apperrors.ErrForbidden when the
	// caller may not move value between the given accounts.
	AuthorizeAccountTransfer(ctx context.Context, caller domain.Caller, accounts []domain.Account) error
}
