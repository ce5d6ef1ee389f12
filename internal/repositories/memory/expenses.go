package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

func sameRecurringPeriod(a, b domain.Expense) bool {
	if a.RecurringProfileID == nil || b.RecurringProfileID == nil || a.RecurringDueDate == nil || b.RecurringDueDate == nil {
		return false
	}
	return *a.RecurringProfileID == *b.RecurringProfileID && a.RecurringDueDate.Equal(*b.RecurringDueDate)
}

func (r *repo) SaveExpense(_ context.Context, expense domain.Expense) error {
	return r.write(func(st *state) error {
		if _, exists := st.expenses[expense.ExpenseID]; exists {
			return fmt.Errorf("expense %s: %w", expense.ExpenseID, apperrors.ErrDuplicate)
		}
		for _, other := range st.expenses {
			if sameRecurringPeriod(other, expense) {
				return apperrors.New(apperrors.KindConcurrentModification,
					"expense for profile %s due %s already exists", *expense.RecurringProfileID, expense.RecurringDueDate.Format("2006-01-02"))
			}
		}
		st.expenses[expense.ExpenseID] = expense
		return nil
	})
}

func (r *repo) FindExpenseByID(_ context.Context, expenseID string) (*domain.Expense, error) {
	var out *domain.Expense
	err := r.read(func(st *state) error {
		e, ok := st.expenses[expenseID]
		if !ok {
			return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *repo) ListExpenses(_ context.Context, filter portsrepo.ExpenseFilter, limit int, offset int) ([]domain.Expense, error) {
	var out []domain.Expense
	_ = r.read(func(st *state) error {
		var all []domain.Expense
		for _, e := range st.expenses {
			if filter.Status != "" && e.Status != filter.Status {
				continue
			}
			if filter.RecurringProfileID != "" && (e.RecurringProfileID == nil || *e.RecurringProfileID != filter.RecurringProfileID) {
				continue
			}
			all = append(all, e)
		}
		slices.SortFunc(all, func(a, b domain.Expense) int {
			if c := b.ExpenseDate.Compare(a.ExpenseDate); c != 0 {
				return c
			}
			return strings.Compare(a.ExpenseID, b.ExpenseID)
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, nil
}

func (r *repo) UpdateExpense(_ context.Context, expense domain.Expense, expectedVersion int64) error {
	return r.write(func(st *state) error {
		stored, ok := st.expenses[expense.ExpenseID]
		if !ok {
			return fmt.Errorf("expense %s: %w", expense.ExpenseID, apperrors.ErrNotFound)
		}
		if stored.Version != expectedVersion {
			return versionConflict("expense", expense.ExpenseID, expectedVersion, stored.Version)
		}
		expense.CreatedAt = stored.CreatedAt
		expense.CreatedBy = stored.CreatedBy
		expense.RecurringProfileID = stored.RecurringProfileID
		expense.RecurringDueDate = stored.RecurringDueDate
		st.expenses[expense.ExpenseID] = expense
		return nil
	})
}

func (r *repo) SaveExpensePayment(_ context.Context, payment domain.ExpensePayment) error {
	return r.write(func(st *state) error {
		if _, exists := st.expensePayments[payment.ExpensePaymentID]; exists {
			return fmt.Errorf("expense payment %s: %w", payment.ExpensePaymentID, apperrors.ErrDuplicate)
		}
		if _, ok := st.expenses[payment.ExpenseID]; !ok {
			return fmt.Errorf("expense payment references expense %s: %w", payment.ExpenseID, apperrors.ErrValidation)
		}
		st.expensePayments[payment.ExpensePaymentID] = payment
		return nil
	})
}

func (r *repo) FindExpensePaymentByID(_ context.Context, expensePaymentID string) (*domain.ExpensePayment, error) {
	var out *domain.ExpensePayment
	err := r.read(func(st *state) error {
		p, ok := st.expensePayments[expensePaymentID]
		if !ok {
			return fmt.Errorf("expense payment %s: %w", expensePaymentID, apperrors.ErrNotFound)
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *repo) DeleteExpensePayment(_ context.Context, expensePaymentID string) error {
	return r.write(func(st *state) error {
		if _, ok := st.expensePayments[expensePaymentID]; !ok {
			return fmt.Errorf("expense payment %s: %w", expensePaymentID, apperrors.ErrNotFound)
		}
		delete(st.expensePayments, expensePaymentID)
		return nil
	})
}

func (r *repo) ListExpensePaymentsByExpenseID(_ context.Context, expenseID string) ([]domain.ExpensePayment, error) {
	var out []domain.ExpensePayment
	_ = r.read(func(st *state) error {
		for _, p := range st.expensePayments {
			if p.ExpenseID == expenseID {
				out = append(out, p)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.ExpensePayment) int {
		if c := a.PaymentDate.Compare(b.PaymentDate); c != 0 {
			return c
		}
		return strings.Compare(a.ExpensePaymentID, b.ExpensePaymentID)
	})
	return out, nil
}
