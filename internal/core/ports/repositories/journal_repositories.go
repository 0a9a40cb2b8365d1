package repositories

import (
	"context"

	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines owned by a single entry, in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListEntries retrieves a paginated list of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccountID retrieves a paginated list of lines touching one account.
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data.
// Header and lines are always written together: lines never exist without
// their entry, not even transiently outside a database transaction.
type JournalEntryWriter interface {
	// SaveEntry persists the entry header and all of its lines in one transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SaveEntryTx persists the entry header and lines using the caller's
	// transaction. Used when the entry is part of a larger atomic unit, such
	// as a payment application.
	SaveEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryHeader updates reference/date fields of an entry, leaving lines untouched.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceEntry updates the header and replaces the full line set (delete
	// then insert) in one transaction.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteEntry deletes all lines then the header in one transaction.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
