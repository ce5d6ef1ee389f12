package accounting

import (
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// ReconcileInvoiceStatus derives the stored status from total and amount paid.
// It never moves an invoice back to draft and leaves cancelled invoices alone.
func ReconcileInvoiceStatus(current domain.InvoiceStatus, total, paid domain.Money) domain.InvoiceStatus {
	if current == domain.InvoiceCancelled {
		return current
	}
	switch {
	case paid <= 0:
		if current == domain.InvoicePaid || current == domain.InvoicePartiallyPaid || current == domain.InvoiceOverdue {
			return domain.InvoiceSent
		}
		return current
	case paid >= total:
		return domain.InvoicePaid
	default:
		return domain.InvoicePartiallyPaid
	}
}

// ReconcileExpenseStatus is the expense counterpart; unpaid expenses fall back to approved.
func ReconcileExpenseStatus(current domain.ExpenseStatus, total, paid domain.Money) domain.ExpenseStatus {
	if current == domain.ExpenseRejected {
		return current
	}
	switch {
	case paid <= 0:
		if current == domain.ExpensePaid || current == domain.ExpensePartiallyPaid {
			return domain.ExpenseApproved
		}
		return current
	case paid >= total:
		return domain.ExpensePaid
	default:
		return domain.ExpensePartiallyPaid
	}
}

// EffectiveInvoiceStatus layers overdue on top of the stored status. Overdue
// depends on the wall clock, so it is computed when reading and never stored.
func EffectiveInvoiceStatus(stored domain.InvoiceStatus, dueDate, today time.Time) domain.InvoiceStatus {
	if stored == domain.InvoicePaid || stored == domain.InvoiceCancelled {
		return stored
	}
	if domain.NormalizeDate(today).After(domain.NormalizeDate(dueDate)) {
		return domain.InvoiceOverdue
	}
	return stored
}
