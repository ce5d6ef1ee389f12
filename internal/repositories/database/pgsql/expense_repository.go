package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

const (
	expenseColumns = `expense_id, category_id, vendor_id, description, expense_date, amount, amount_paid, status,
	recurring_profile_id, recurring_due_date, document_id, version, created_at, created_by, last_updated_at, last_updated_by`
	expensePaymentColumns = `expense_payment_id, expense_id, payment_date, method, amount, reference,
	created_at, created_by, last_updated_at, last_updated_by`
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db dbtx) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository{db: db}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense inserts a new expense. The partial unique index on
// (recurring_profile_id, recurring_due_date) turns a second generation of the
// same period into ConcurrentModification.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.db.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.ExpenseID, m.CategoryID, m.VendorID, m.Description, m.ExpenseDate, m.Amount, m.AmountPaid, m.Status,
		m.RecurringProfileID, m.RecurringDueDate, m.DocumentID, m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save expense %s", m.ExpenseID)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	m, err := collectOne[models.Expense](ctx, r.db,
		`SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1`, expenseID)
	if err != nil {
		return nil, notFoundOr(err, "expense", expenseID)
	}
	e := mapping.ToDomainExpense(m)
	return &e, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseFilter, limit int, offset int) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE TRUE`
	var args []any
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.RecurringProfileID != "" {
		args = append(args, filter.RecurringProfileID)
		query += ` AND recurring_profile_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY expense_date DESC, expense_id`
	page, args := pageClause(args, limit, offset)

	ms, err := collectRows[models.Expense](ctx, r.db, query+page, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list expenses")
	}
	return mapping.ToDomainExpenseSlice(ms), nil
}

// UpdateExpense leaves the creation audit and the recurring period untouched.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	m := mapping.ToModelExpense(expense)
	tag, err := r.db.Exec(ctx, `
		UPDATE expenses
		SET category_id = $3, vendor_id = $4, description = $5, expense_date = $6, amount = $7, amount_paid = $8,
			status = $9, document_id = $10, version = $11, last_updated_at = $12, last_updated_by = $13
		WHERE expense_id = $1 AND version = $2`,
		m.ExpenseID, expectedVersion, m.CategoryID, m.VendorID, m.Description, m.ExpenseDate, m.Amount, m.AmountPaid,
		m.Status, m.DocumentID, m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update expense %s", m.ExpenseID)
	}
	if tag.RowsAffected() == 0 {
		return versionConflict(ctx, r.db, "expenses", "expense_id", "expense", m.ExpenseID, expectedVersion)
	}
	return nil
}

func (r *PgxExpenseRepository) SaveExpensePayment(ctx context.Context, payment domain.ExpensePayment) error {
	m := mapping.ToModelExpensePayment(payment)
	_, err := r.db.Exec(ctx, `
		INSERT INTO expense_payments (`+expensePaymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ExpensePaymentID, m.ExpenseID, m.PaymentDate, m.Method, m.Amount, m.Reference,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save expense payment %s", m.ExpensePaymentID)
}

func (r *PgxExpenseRepository) FindExpensePaymentByID(ctx context.Context, expensePaymentID string) (*domain.ExpensePayment, error) {
	m, err := collectOne[models.ExpensePayment](ctx, r.db,
		`SELECT `+expensePaymentColumns+` FROM expense_payments WHERE expense_payment_id = $1`, expensePaymentID)
	if err != nil {
		return nil, notFoundOr(err, "expense payment", expensePaymentID)
	}
	p := mapping.ToDomainExpensePayment(m)
	return &p, nil
}

func (r *PgxExpenseRepository) DeleteExpensePayment(ctx context.Context, expensePaymentID string) error {
	return execAffecting(ctx, r.db, "expense payment", expensePaymentID,
		`DELETE FROM expense_payments WHERE expense_payment_id = $1`, expensePaymentID)
}

func (r *PgxExpenseRepository) ListExpensePaymentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error) {
	ms, err := collectRows[models.ExpensePayment](ctx, r.db, `
		SELECT `+expensePaymentColumns+` FROM expense_payments
		WHERE expense_id = $1
		ORDER BY payment_date, expense_payment_id`, expenseID)
	if err != nil {
		return nil, mapPgError(err, "failed to list payments of expense %s", expenseID)
	}
	return mapping.ToDomainExpensePaymentSlice(ms), nil
}
