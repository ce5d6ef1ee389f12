package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

func (r *repo) SaveBankAccount(_ context.Context, account domain.BankAccount) error {
	return r.write(func(st *state) error {
		if _, exists := st.bankAccounts[account.BankAccountID]; exists {
			return fmt.Errorf("bank account %s: %w", account.BankAccountID, apperrors.ErrDuplicate)
		}
		st.bankAccounts[account.BankAccountID] = account
		return nil
	})
}

func (r *repo) FindBankAccountByID(_ context.Context, bankAccountID string) (*domain.BankAccount, error) {
	var out *domain.BankAccount
	err := r.read(func(st *state) error {
		acc, ok := st.bankAccounts[bankAccountID]
		if !ok {
			return fmt.Errorf("bank account %s: %w", bankAccountID, apperrors.ErrNotFound)
		}
		out = &acc
		return nil
	})
	return out, err
}

func (r *repo) ListBankAccounts(_ context.Context, limit int, offset int) ([]domain.BankAccount, error) {
	var out []domain.BankAccount
	_ = r.read(func(st *state) error {
		all := make([]domain.BankAccount, 0, len(st.bankAccounts))
		for _, acc := range st.bankAccounts {
			all = append(all, acc)
		}
		slices.SortFunc(all, func(a, b domain.BankAccount) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.BankAccountID, b.BankAccountID)
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, nil
}

func (r *repo) UpdateBankAccount(_ context.Context, account domain.BankAccount, expectedVersion int64) error {
	return r.write(func(st *state) error {
		stored, ok := st.bankAccounts[account.BankAccountID]
		if !ok {
			return fmt.Errorf("bank account %s: %w", account.BankAccountID, apperrors.ErrNotFound)
		}
		if stored.Version != expectedVersion {
			return versionConflict("bank account", account.BankAccountID, expectedVersion, stored.Version)
		}
		stored.Name = account.Name
		stored.IsActive = account.IsActive
		stored.CurrentBalance = account.CurrentBalance
		stored.Version = account.Version
		stored.LastUpdatedAt = account.LastUpdatedAt
		stored.LastUpdatedBy = account.LastUpdatedBy
		st.bankAccounts[account.BankAccountID] = stored
		return nil
	})
}

func (r *repo) SaveBankTransaction(_ context.Context, txn domain.BankTransaction) error {
	return r.write(func(st *state) error {
		if _, exists := st.bankTxns[txn.BankTransactionID]; exists {
			return fmt.Errorf("bank transaction %s: %w", txn.BankTransactionID, apperrors.ErrDuplicate)
		}
		if _, ok := st.bankAccounts[txn.BankAccountID]; !ok {
			return fmt.Errorf("bank transaction references account %s: %w", txn.BankAccountID, apperrors.ErrValidation)
		}
		st.bankTxns[txn.BankTransactionID] = txn
		return nil
	})
}

func (r *repo) FindBankTransactionByID(_ context.Context, bankTransactionID string) (*domain.BankTransaction, error) {
	var out *domain.BankTransaction
	err := r.read(func(st *state) error {
		t, ok := st.bankTxns[bankTransactionID]
		if !ok {
			return fmt.Errorf("bank transaction %s: %w", bankTransactionID, apperrors.ErrNotFound)
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *repo) DeleteBankTransaction(_ context.Context, bankTransactionID string) error {
	return r.write(func(st *state) error {
		if _, ok := st.bankTxns[bankTransactionID]; !ok {
			return fmt.Errorf("bank transaction %s: %w", bankTransactionID, apperrors.ErrNotFound)
		}
		delete(st.bankTxns, bankTransactionID)
		return nil
	})
}

func (r *repo) ListBankTransactionsByAccountID(_ context.Context, bankAccountID string) ([]domain.BankTransaction, error) {
	var out []domain.BankTransaction
	_ = r.read(func(st *state) error {
		for _, t := range st.bankTxns {
			if t.BankAccountID == bankAccountID {
				out = append(out, t)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.BankTransaction) int {
		if c := a.TransactionDate.Compare(b.TransactionDate); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.BankTransactionID, b.BankTransactionID)
	})
	return out, nil
}

func (r *repo) MarkBankTransactionReconciled(_ context.Context, bankTransactionID string, reconciled bool, userID string, now time.Time) error {
	return r.write(func(st *state) error {
		t, ok := st.bankTxns[bankTransactionID]
		if !ok {
			return fmt.Errorf("bank transaction %s: %w", bankTransactionID, apperrors.ErrNotFound)
		}
		t.Reconciled = reconciled
		t.Touch(userID, now)
		st.bankTxns[bankTransactionID] = t
		return nil
	})
}
