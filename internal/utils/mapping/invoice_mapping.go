package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

// ToModelInvoice converts the invoice header; lines go through ToModelInvoiceLine.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		CustomerID:    d.CustomerID,
		InvoiceNumber: d.InvoiceNumber,
		IssueDate:     domain.NormalizeDate(d.IssueDate),
		DueDate:       domain.NormalizeDate(d.DueDate),
		TaxRate:       d.TaxRate,
		Subtotal:      int64(d.Subtotal),
		Tax:           int64(d.Tax),
		Total:         int64(d.Total),
		AmountPaid:    int64(d.AmountPaid),
		Status:        string(d.Status),
		Notes:         d.Notes,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		CustomerID:    m.CustomerID,
		InvoiceNumber: m.InvoiceNumber,
		IssueDate:     domain.NormalizeDate(m.IssueDate),
		DueDate:       domain.NormalizeDate(m.DueDate),
		TaxRate:       m.TaxRate,
		Subtotal:      domain.Money(m.Subtotal),
		Tax:           domain.Money(m.Tax),
		Total:         domain.Money(m.Total),
		AmountPaid:    domain.Money(m.AmountPaid),
		Status:        domain.InvoiceStatus(m.Status),
		Notes:         m.Notes,
		Version:       m.Version,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	return mapSlice(ms, ToDomainInvoice)
}

func ToModelInvoiceLine(d domain.InvoiceLine) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:      d.LineID,
		InvoiceID:   d.InvoiceID,
		LineNo:      d.LineNo,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   int64(d.UnitPrice),
		LineTotal:   int64(d.LineTotal),
	}
}

func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:      m.LineID,
		InvoiceID:   m.InvoiceID,
		LineNo:      m.LineNo,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   domain.Money(m.UnitPrice),
		LineTotal:   domain.Money(m.LineTotal),
	}
}

func ToDomainInvoiceLineSlice(ms []models.InvoiceLine) []domain.InvoiceLine {
	return mapSlice(ms, ToDomainInvoiceLine)
}
