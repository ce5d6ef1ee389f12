package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// BankAccountReader defines read operations for bank accounts.
type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank accounts.
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount writes name, is_active, current_balance and version when the
	// stored version equals expectedVersion.
	UpdateBankAccount(ctx context.Context, account domain.BankAccount, expectedVersion int64) error
}

// BankTransactionRepository defines operations on bank transactions.
type BankTransactionRepository interface {
	SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error
	FindBankTransactionByID(ctx context.Context, bankTransactionID string) (*domain.BankTransaction, error)
	DeleteBankTransaction(ctx context.Context, bankTransactionID string) error

	// ListBankTransactionsByAccountID returns the account's transactions oldest first.
	ListBankTransactionsByAccountID(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error)

	MarkBankTransactionReconciled(ctx context.Context, bankTransactionID string, reconciled bool, userID string, now time.Time) error
}

// BankRepositoryFacade combines all bank-related repository interfaces
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankTransactionRepository
}
