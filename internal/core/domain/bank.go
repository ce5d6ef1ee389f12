package domain

import "time"

// BankAccount keeps current_balance as a projection of its transactions.
type BankAccount struct {
	BankAccountID  string `json:"bankAccountID"`
	Name           string `json:"name"`
	AccountNumber  string `json:"accountNumber"`
	CurrentBalance Money  `json:"currentBalance"`
	IsActive       bool   `json:"isActive"`
	Version        int64  `json:"version"`
	AuditFields
}

// BankTransactionType is deposit or withdrawal.
type BankTransactionType string

const (
	Deposit    BankTransactionType = "deposit"
	Withdrawal BankTransactionType = "withdrawal"
)

func (t BankTransactionType) IsValid() bool { return t == Deposit || t == Withdrawal }

// BankTransaction is a dated movement on a bank account.
type BankTransaction struct {
	BankTransactionID string              `json:"bankTransactionID"`
	BankAccountID     string              `json:"bankAccountID"`
	TransactionDate   time.Time           `json:"transactionDate"`
	Type              BankTransactionType `json:"type"`
	Amount            Money               `json:"amount"` // always positive
	Description       string              `json:"description"`
	Reference         string              `json:"reference"`
	Reconciled        bool                `json:"reconciled"`
	AuditFields
}
