package models

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account is the accounts row. No balance column: balances are derived from
// journal lines, never persisted.
type Account struct {
	AccountID    string      `db:"account_id"`
	BranchID     string      `db:"branch_id"`
	Name         string      `db:"name"`
	AccountType  AccountType `db:"account_type"`
	CurrencyCode string      `db:"currency_code"`
	Description  string      `db:"description"`
	IsActive     bool        `db:"is_active"`
	AuditFields
}
