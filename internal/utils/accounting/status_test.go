package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
)

func TestReconcileInvoiceStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.InvoiceStatus
		total   domain.Money
		paid    domain.Money
		want    domain.InvoiceStatus
	}{
		{"unpaid draft stays draft", domain.InvoiceDraft, 500, 0, domain.InvoiceDraft},
		{"unpaid sent stays sent", domain.InvoiceSent, 500, 0, domain.InvoiceSent},
		{"partial", domain.InvoiceSent, 500, 100, domain.InvoicePartiallyPaid},
		{"exact", domain.InvoicePartiallyPaid, 500, 500, domain.InvoicePaid},
		{"voided back to zero", domain.InvoicePaid, 500, 0, domain.InvoiceSent},
		{"voided back to partial", domain.InvoicePaid, 500, 200, domain.InvoicePartiallyPaid},
		{"cancelled untouched", domain.InvoiceCancelled, 500, 500, domain.InvoiceCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.ReconcileInvoiceStatus(tt.current, tt.total, tt.paid))
		})
	}
}

func TestReconcileExpenseStatus(t *testing.T) {
	assert.Equal(t, domain.ExpensePartiallyPaid, accounting.ReconcileExpenseStatus(domain.ExpenseApproved, 1000, 1))
	assert.Equal(t, domain.ExpensePaid, accounting.ReconcileExpenseStatus(domain.ExpensePartiallyPaid, 1000, 1000))
	assert.Equal(t, domain.ExpenseApproved, accounting.ReconcileExpenseStatus(domain.ExpensePaid, 1000, 0))
	assert.Equal(t, domain.ExpensePending, accounting.ReconcileExpenseStatus(domain.ExpensePending, 1000, 0))
	assert.Equal(t, domain.ExpenseRejected, accounting.ReconcileExpenseStatus(domain.ExpenseRejected, 1000, 0))
}

func TestEffectiveInvoiceStatus(t *testing.T) {
	due := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	onDueDay := time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
	dayAfter := time.Date(2024, 4, 1, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, domain.InvoiceSent, accounting.EffectiveInvoiceStatus(domain.InvoiceSent, due, onDueDay))
	assert.Equal(t, domain.InvoiceOverdue, accounting.EffectiveInvoiceStatus(domain.InvoiceSent, due, dayAfter))
	assert.Equal(t, domain.InvoiceOverdue, accounting.EffectiveInvoiceStatus(domain.InvoicePartiallyPaid, due, dayAfter))
	assert.Equal(t, domain.InvoicePaid, accounting.EffectiveInvoiceStatus(domain.InvoicePaid, due, dayAfter))
	assert.Equal(t, domain.InvoiceCancelled, accounting.EffectiveInvoiceStatus(domain.InvoiceCancelled, due, dayAfter))
}
