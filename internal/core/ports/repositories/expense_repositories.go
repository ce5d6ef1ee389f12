package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// ExpenseFilter narrows ListExpenses. Empty fields match everything.
type ExpenseFilter struct {
	Status             domain.ExpenseStatus
	RecurringProfileID string
}

// ExpenseReader defines read operations for expenses.
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter, limit int, offset int) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses.
type ExpenseWriter interface {
	// SaveExpense persists a new expense. A second expense for the same
	// (recurring profile, due date) fails with ConcurrentModification.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense writes the expense when the stored version equals expectedVersion.
	UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error
}

// ExpensePaymentRepository defines operations on payments made against expenses.
type ExpensePaymentRepository interface {
	SaveExpensePayment(ctx context.Context, payment domain.ExpensePayment) error
	FindExpensePaymentByID(ctx context.Context, expensePaymentID string) (*domain.ExpensePayment, error)
	DeleteExpensePayment(ctx context.Context, expensePaymentID string) error
	ListExpensePaymentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpensePaymentRepository
}
