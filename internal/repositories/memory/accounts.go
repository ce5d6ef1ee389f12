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

func (r *repo) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	var out *domain.Account
	err := r.read(func(st *state) error {
		acc, ok := st.accounts[accountID]
		if !ok {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		out = &acc
		return nil
	})
	return out, err
}

func (r *repo) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	found := make(map[string]domain.Account, len(accountIDs))
	_ = r.read(func(st *state) error {
		for _, id := range accountIDs {
			if acc, ok := st.accounts[id]; ok {
				found[id] = acc
			}
		}
		return nil
	})
	return found, nil
}

// FindAccountsByIDsForUpdate needs no row lock here: the transaction already owns the store.
func (r *repo) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.FindAccountsByIDs(ctx, accountIDs)
}

func (r *repo) ListAccounts(_ context.Context, limit int, offset int) ([]domain.Account, error) {
	var out []domain.Account
	_ = r.read(func(st *state) error {
		all := make([]domain.Account, 0, len(st.accounts))
		for _, acc := range st.accounts {
			all = append(all, acc)
		}
		slices.SortFunc(all, func(a, b domain.Account) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.AccountID, b.AccountID)
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, nil
}

func (r *repo) SaveAccount(_ context.Context, account domain.Account) error {
	return r.write(func(st *state) error {
		if _, exists := st.accounts[account.AccountID]; exists {
			return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r *repo) UpdateAccount(_ context.Context, account domain.Account) error {
	return r.write(func(st *state) error {
		stored, ok := st.accounts[account.AccountID]
		if !ok {
			return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrNotFound)
		}
		stored.Name = account.Name
		stored.Description = account.Description
		stored.IsActive = account.IsActive
		stored.LastUpdatedAt = account.LastUpdatedAt
		stored.LastUpdatedBy = account.LastUpdatedBy
		st.accounts[account.AccountID] = stored
		return nil
	})
}

func (r *repo) DeleteAccount(_ context.Context, accountID string) error {
	return r.write(func(st *state) error {
		if _, ok := st.accounts[accountID]; !ok {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		delete(st.accounts, accountID)
		return nil
	})
}

func (r *repo) UpdateAccountBalances(_ context.Context, balanceChanges map[string]domain.Money, userID string, now time.Time) error {
	return r.write(func(st *state) error {
		for id := range balanceChanges {
			if _, ok := st.accounts[id]; !ok {
				return fmt.Errorf("update balance of account %s: %w", id, apperrors.ErrNotFound)
			}
		}
		for id, delta := range balanceChanges {
			acc := st.accounts[id]
			acc.Balance = acc.Balance.Add(delta)
			acc.Touch(userID, now)
			st.accounts[id] = acc
		}
		return nil
	})
}
