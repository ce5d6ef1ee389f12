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

func versionConflict(entity, id string, expected, actual int64) error {
	return apperrors.New(apperrors.KindConcurrentModification,
		"%s %s was modified concurrently (expected version %d, found %d)", entity, id, expected, actual)
}

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	inv.Lines = slices.Clone(inv.Lines)
	return inv
}

func (r *repo) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	return r.write(func(st *state) error {
		if _, exists := st.invoices[invoice.InvoiceID]; exists {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
		}
		for _, other := range st.invoices {
			if other.InvoiceNumber == invoice.InvoiceNumber {
				return fmt.Errorf("invoice number %s: %w", invoice.InvoiceNumber, apperrors.ErrDuplicate)
			}
		}
		st.invoices[invoice.InvoiceID] = cloneInvoice(invoice)
		return nil
	})
}

func (r *repo) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	var out *domain.Invoice
	err := r.read(func(st *state) error {
		inv, ok := st.invoices[invoiceID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		inv = cloneInvoice(inv)
		out = &inv
		return nil
	})
	return out, err
}

func (r *repo) FindInvoicesByIDs(_ context.Context, invoiceIDs []string) (map[string]domain.Invoice, error) {
	found := make(map[string]domain.Invoice, len(invoiceIDs))
	_ = r.read(func(st *state) error {
		for _, id := range invoiceIDs {
			if inv, ok := st.invoices[id]; ok {
				inv.Lines = nil
				found[id] = inv
			}
		}
		return nil
	})
	return found, nil
}

func (r *repo) ListInvoices(_ context.Context, filter portsrepo.InvoiceFilter, limit int, offset int) ([]domain.Invoice, error) {
	var out []domain.Invoice
	_ = r.read(func(st *state) error {
		var all []domain.Invoice
		for _, inv := range st.invoices {
			if filter.CustomerID != "" && inv.CustomerID != filter.CustomerID {
				continue
			}
			if filter.Status != "" && inv.Status != filter.Status {
				continue
			}
			all = append(all, cloneInvoice(inv))
		}
		slices.SortFunc(all, func(a, b domain.Invoice) int {
			if c := b.IssueDate.Compare(a.IssueDate); c != 0 {
				return c
			}
			return strings.Compare(b.InvoiceNumber, a.InvoiceNumber)
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, nil
}

func (r *repo) UpdateInvoice(_ context.Context, invoice domain.Invoice, expectedVersion int64) error {
	return r.write(func(st *state) error {
		stored, ok := st.invoices[invoice.InvoiceID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrNotFound)
		}
		if stored.Version != expectedVersion {
			return versionConflict("invoice", invoice.InvoiceID, expectedVersion, stored.Version)
		}
		updated := invoice
		updated.Lines = stored.Lines
		updated.CreatedAt = stored.CreatedAt
		updated.CreatedBy = stored.CreatedBy
		st.invoices[invoice.InvoiceID] = updated
		return nil
	})
}

func (r *repo) ReplaceInvoiceLines(_ context.Context, invoiceID string, lines []domain.InvoiceLine) error {
	return r.write(func(st *state) error {
		stored, ok := st.invoices[invoiceID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		stored.Lines = slices.Clone(lines)
		st.invoices[invoiceID] = stored
		return nil
	})
}
