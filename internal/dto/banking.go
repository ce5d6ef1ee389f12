package dto

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// CreateBankAccountRequest opens a bank account with a zero balance.
type CreateBankAccountRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	AccountNumber string `json:"accountNumber" binding:"max=64"`
}

// RecordBankTransactionRequest records a deposit or withdrawal.
type RecordBankTransactionRequest struct {
	BankAccountID   string                     `json:"bankAccountID"`
	TransactionDate Date                       `json:"transactionDate" binding:"required" swaggertype:"string" example:"2024-02-01"`
	Type            domain.BankTransactionType `json:"type" binding:"required,oneof=deposit withdrawal"`
	Amount          domain.Money               `json:"amount" swaggertype:"string" example:"75.00"`
	Description     string                     `json:"description" binding:"max=500"`
	Reference       string                     `json:"reference" binding:"max=255"`
}

// ReconcileBankTransactionRequest flags a transaction as matched to a statement line.
type ReconcileBankTransactionRequest struct {
	Reconciled bool `json:"reconciled"`
}

// BankAccountResponse adds the display-formatted balance.
type BankAccountResponse struct {
	domain.BankAccount
	FormattedBalance string `json:"formattedBalance" example:"$1,234.50"`
}
