package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// InvoiceFilter narrows ListInvoices. Empty fields match everything.
type InvoiceFilter struct {
	CustomerID string
	Status     domain.InvoiceStatus
}

// InvoiceReader defines read operations for invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoicesByIDs retrieves invoices (without lines) keyed by id.
	FindInvoicesByIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.Invoice, error)

	ListInvoices(ctx context.Context, filter InvoiceFilter, limit int, offset int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its lines.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice writes the header fields, including invoice.Version, only if the
	// stored version still equals expectedVersion. Otherwise it returns ConcurrentModification.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error

	// ReplaceInvoiceLines swaps the stored lines for the given ones.
	ReplaceInvoiceLines(ctx context.Context, invoiceID string, lines []domain.InvoiceLine) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
