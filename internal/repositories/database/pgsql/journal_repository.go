package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/branchbooks/ledger_backend/internal/models"
	"github.com/branchbooks/ledger_backend/internal/utils/mapping"
	"github.com/branchbooks/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalEntryColumns = `entry_id, reference_type, reference_id, entry_date, currency_code, total_amount, created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, entry_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.EntryDate,
		&m.CurrencyCode,
		&m.TotalAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertEntryTx writes the entry header and batches all line inserts on the
// given transaction. Shared by SaveEntry, SaveEntryTx and ReplaceEntry so the
// write path is identical regardless of who owns the transaction.
func (r *PgxJournalRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	modelEntry := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.EntryDate,
		modelEntry.CurrencyCode,
		modelEntry.TotalAmount,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < len(lines); i++ {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to insert journal line %d for entry %s", i, modelEntry.EntryID), err)
		}
	}

	return nil
}

// SaveEntry persists the entry header and its lines in a single transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.insertEntryTx(ctx, tx, entry, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveEntryTx persists the entry header and its lines on the caller's transaction.
func (r *PgxJournalRepository) SaveEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	return r.insertEntryTx(ctx, tx, entry, lines)
}

// FindEntryByID retrieves a single entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

func (r *PgxJournalRepository) queryLines(ctx context.Context, q rowQuerier, query string, args ...any) ([]models.JournalLine, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		lines = append(lines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}

	return lines, nil
}

// FindLinesByEntryID retrieves all lines for one entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY created_at ASC, line_id ASC;
	`
	modelLines, err := r.queryLines(ctx, r.Pool, query, entryID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id ASC, created_at ASC, line_id ASC;
	`
	modelLines, err := r.queryLines(ctx, r.Pool, query, entryIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.JournalLine, len(entryIDs))
	for _, m := range modelLines {
		grouped[m.EntryID] = append(grouped[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	return grouped, nil
}

// ListEntries retrieves entries newest first using a (entry_date, created_at)
// cursor. It fetches limit+1 rows to decide whether another page exists.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
	`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	var modelEntries []models.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var newNextToken *string
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
		modelEntries = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, newNextToken, nil
}

// ListLinesByAccountID retrieves lines touching one account, newest first,
// using a created_at cursor.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE account_id = $1
	`
	args := []any{accountID}
	if nextToken != nil && *nextToken != "" {
		createdAt, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND created_at < $2`
		args = append(args, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	modelLines, err := r.queryLines(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(modelLines) > limit {
		token := pagination.EncodeDateBasedToken(modelLines[limit-1].CreatedAt)
		newNextToken = &token
		modelLines = modelLines[:limit]
	}

	return mapping.ToDomainJournalLineSlice(modelLines), newNextToken, nil
}

// UpdateEntryHeader updates reference and date fields of an existing entry.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	modelEntry := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET reference_type = $2, reference_id = $3, entry_date = $4, currency_code = $5, total_amount = $6, last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.EntryDate,
		modelEntry.CurrencyCode,
		modelEntry.TotalAmount,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+modelEntry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry not found: " + modelEntry.EntryID)
	}
	return nil
}

// ReplaceEntry updates the header and swaps the full line set in one
// transaction. Old lines are deleted before the new set is inserted, so the
// entry is never observable with a mixed line set.
func (r *PgxJournalRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	modelEntry := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET reference_type = $2, reference_id = $3, entry_date = $4, currency_code = $5, total_amount = $6, last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		modelEntry.EntryID,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.EntryDate,
		modelEntry.CurrencyCode,
		modelEntry.TotalAmount,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+modelEntry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry not found: " + modelEntry.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, modelEntry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines for entry "+modelEntry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < len(lines); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return apperrors.NewAppError(500, fmt.Sprintf("failed to insert journal line %d for entry %s", i, modelEntry.EntryID), err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close line insert batch for entry "+modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes the lines then the header in one transaction.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines for entry "+entryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry not found: " + entryID)
	}

	return r.Commit(ctx, tx)
}
