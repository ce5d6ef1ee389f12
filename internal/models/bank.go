package models

import "time"

// BankAccount is a row of the bank_accounts table.
type BankAccount struct {
	BankAccountID  string `db:"bank_account_id"`
	Name           string `db:"name"`
	AccountNumber  string `db:"account_number"`
	CurrentBalance int64  `db:"current_balance"`
	IsActive       bool   `db:"is_active"`
	Version        int64  `db:"version"`
	AuditFields
}

// BankTransaction is a row of the bank_transactions table.
type BankTransaction struct {
	BankTransactionID string    `db:"bank_transaction_id"`
	BankAccountID     string    `db:"bank_account_id"`
	TransactionDate   time.Time `db:"transaction_date"`
	Type              string    `db:"type"`
	Amount            int64     `db:"amount"`
	Description       string    `db:"description"`
	Reference         string    `db:"reference"`
	Reconciled        bool      `db:"reconciled"`
	AuditFields
}
