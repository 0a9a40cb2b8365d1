package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData sums debits and credits per account over all lines
// whose entry is dated on or before asOf. Accounts with no lines in range are
// not returned; net-zero filtering happens in the service layer.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       COALESCE(SUM(jl.debit), 0) AS total_debit,
		       COALESCE(SUM(jl.credit), 0) AS total_credit
		FROM journal_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		JOIN accounts a ON a.account_id = jl.account_id
		WHERE je.entry_date <= $1
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		if err := rows.Scan(&row.AccountID, &row.AccountName, &accountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}

	return result, nil
}

// GetAccountBalanceData returns the debit/credit aggregate for one account.
// The account row is the anchor, so an existing account with no activity
// returns zero sums rather than not-found.
func (r *PgxReportingRepository) GetAccountBalanceData(ctx context.Context, accountID string, asOf time.Time) (*domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (
			SELECT jl.account_id, jl.debit, jl.credit
			FROM journal_lines jl
			JOIN journal_entries je ON je.entry_id = jl.entry_id
			WHERE je.entry_date <= $2
		) l ON l.account_id = a.account_id
		WHERE a.account_id = $1
		GROUP BY a.account_id, a.name, a.account_type;
	`
	var row domain.TrialBalanceRow
	var accountType string
	err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&row.AccountID, &row.AccountName, &accountType, &row.Debit, &row.Credit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query balance for account "+accountID, err)
	}
	row.AccountType = domain.AccountType(accountType)

	return &row, nil
}
