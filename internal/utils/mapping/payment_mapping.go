package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		CustomerID:  d.CustomerID,
		PaymentDate: domain.NormalizeDate(d.PaymentDate),
		Method:      string(d.Method),
		Amount:      int64(d.Amount),
		Reference:   d.Reference,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts the payment row; allocations are attached by the caller.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		CustomerID:  m.CustomerID,
		PaymentDate: domain.NormalizeDate(m.PaymentDate),
		Method:      domain.PaymentMethod(m.Method),
		Amount:      domain.Money(m.Amount),
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	return mapSlice(ms, ToDomainPayment)
}

func ToModelInvoicePayment(d domain.InvoicePayment) models.InvoicePayment {
	return models.InvoicePayment{
		InvoicePaymentID: d.InvoicePaymentID,
		PaymentID:        d.PaymentID,
		InvoiceID:        d.InvoiceID,
		AmountApplied:    int64(d.AmountApplied),
	}
}

func ToDomainInvoicePayment(m models.InvoicePayment) domain.InvoicePayment {
	return domain.InvoicePayment{
		InvoicePaymentID: m.InvoicePaymentID,
		PaymentID:        m.PaymentID,
		InvoiceID:        m.InvoiceID,
		AmountApplied:    domain.Money(m.AmountApplied),
	}
}

func ToDomainInvoicePaymentSlice(ms []models.InvoicePayment) []domain.InvoicePayment {
	return mapSlice(ms, ToDomainInvoicePayment)
}

func ToModelCreditNote(d domain.CreditNote) models.CreditNote {
	return models.CreditNote{
		CreditNoteID: d.CreditNoteID,
		InvoiceID:    d.InvoiceID,
		NoteDate:     domain.NormalizeDate(d.NoteDate),
		Amount:       int64(d.Amount),
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCreditNote(m models.CreditNote) domain.CreditNote {
	return domain.CreditNote{
		CreditNoteID: m.CreditNoteID,
		InvoiceID:    m.InvoiceID,
		NoteDate:     domain.NormalizeDate(m.NoteDate),
		Amount:       domain.Money(m.Amount),
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCreditNoteSlice(ms []models.CreditNote) []domain.CreditNote {
	return mapSlice(ms, ToDomainCreditNote)
}
