package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

func clonePayment(p domain.Payment) domain.Payment {
	p.Allocations = slices.Clone(p.Allocations)
	return p
}

func (r *repo) SavePayment(_ context.Context, payment domain.Payment) error {
	return r.write(func(st *state) error {
		if _, exists := st.payments[payment.PaymentID]; exists {
			return fmt.Errorf("payment %s: %w", payment.PaymentID, apperrors.ErrDuplicate)
		}
		for _, a := range payment.Allocations {
			if _, ok := st.invoices[a.InvoiceID]; !ok {
				return fmt.Errorf("allocation references invoice %s: %w", a.InvoiceID, apperrors.ErrValidation)
			}
		}
		st.payments[payment.PaymentID] = clonePayment(payment)
		return nil
	})
}

func (r *repo) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	var out *domain.Payment
	err := r.read(func(st *state) error {
		p, ok := st.payments[paymentID]
		if !ok {
			return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
		}
		p = clonePayment(p)
		out = &p
		return nil
	})
	return out, err
}

func (r *repo) DeletePayment(_ context.Context, paymentID string) error {
	return r.write(func(st *state) error {
		if _, ok := st.payments[paymentID]; !ok {
			return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
		}
		delete(st.payments, paymentID)
		return nil
	})
}

func (r *repo) ListAllocationsByInvoiceID(_ context.Context, invoiceID string) ([]domain.InvoicePayment, error) {
	var out []domain.InvoicePayment
	_ = r.read(func(st *state) error {
		for _, p := range st.payments {
			for _, a := range p.Allocations {
				if a.InvoiceID == invoiceID {
					out = append(out, a)
				}
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.InvoicePayment) int {
		return strings.Compare(a.InvoicePaymentID, b.InvoicePaymentID)
	})
	return out, nil
}

func (r *repo) ListPayments(_ context.Context, customerID string, limit int, offset int) ([]domain.Payment, error) {
	var out []domain.Payment
	_ = r.read(func(st *state) error {
		var all []domain.Payment
		for _, p := range st.payments {
			if customerID != "" && p.CustomerID != customerID {
				continue
			}
			all = append(all, clonePayment(p))
		}
		slices.SortFunc(all, func(a, b domain.Payment) int {
			if c := b.PaymentDate.Compare(a.PaymentDate); c != 0 {
				return c
			}
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return strings.Compare(b.PaymentID, a.PaymentID)
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, nil
}

func (r *repo) SaveCreditNote(_ context.Context, note domain.CreditNote) error {
	return r.write(func(st *state) error {
		if _, exists := st.creditNotes[note.CreditNoteID]; exists {
			return fmt.Errorf("credit note %s: %w", note.CreditNoteID, apperrors.ErrDuplicate)
		}
		if _, ok := st.invoices[note.InvoiceID]; !ok {
			return fmt.Errorf("credit note references invoice %s: %w", note.InvoiceID, apperrors.ErrValidation)
		}
		st.creditNotes[note.CreditNoteID] = note
		return nil
	})
}

func (r *repo) FindCreditNoteByID(_ context.Context, creditNoteID string) (*domain.CreditNote, error) {
	var out *domain.CreditNote
	err := r.read(func(st *state) error {
		n, ok := st.creditNotes[creditNoteID]
		if !ok {
			return fmt.Errorf("credit note %s: %w", creditNoteID, apperrors.ErrNotFound)
		}
		out = &n
		return nil
	})
	return out, err
}

func (r *repo) DeleteCreditNote(_ context.Context, creditNoteID string) error {
	return r.write(func(st *state) error {
		if _, ok := st.creditNotes[creditNoteID]; !ok {
			return fmt.Errorf("credit note %s: %w", creditNoteID, apperrors.ErrNotFound)
		}
		delete(st.creditNotes, creditNoteID)
		return nil
	})
}

func (r *repo) ListCreditNotesByInvoiceID(_ context.Context, invoiceID string) ([]domain.CreditNote, error) {
	var out []domain.CreditNote
	_ = r.read(func(st *state) error {
		for _, n := range st.creditNotes {
			if n.InvoiceID == invoiceID {
				out = append(out, n)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.CreditNote) int {
		if c := a.NoteDate.Compare(b.NoteDate); c != 0 {
			return c
		}
		return strings.Compare(a.CreditNoteID, b.CreditNoteID)
	})
	return out, nil
}
