package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// PaymentRepositoryFacade covers customer payments and their invoice allocations.
type PaymentRepositoryFacade interface {
	// SavePayment persists the payment and every allocation.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// FindPaymentByID retrieves a payment with its allocations.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// DeletePayment removes the payment and its allocations.
	DeletePayment(ctx context.Context, paymentID string) error

	ListAllocationsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoicePayment, error)

	// ListPayments lists payments newest first; an empty customerID lists all customers.
	ListPayments(ctx context.Context, customerID string, limit int, offset int) ([]domain.Payment, error)
}

// CreditNoteRepositoryFacade covers credit notes issued against invoices.
type CreditNoteRepositoryFacade interface {
	SaveCreditNote(ctx context.Context, note domain.CreditNote) error
	FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)
	DeleteCreditNote(ctx context.Context, creditNoteID string) error
	ListCreditNotesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.CreditNote, error)
}
