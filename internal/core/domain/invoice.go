package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceSent          InvoiceStatus = "sent"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	// InvoiceOverdue is derived on read and never stored.
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// AcceptsPayments reports whether money may be applied against the invoice.
func (s InvoiceStatus) AcceptsPayments() bool {
	return s != InvoiceDraft && s != InvoiceCancelled
}

// Invoice is a sellable document with a materialized amount_paid.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	CustomerID    string          `json:"customerID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	TaxRate       decimal.Decimal `json:"taxRate"` // percent, e.g. 7.5
	Subtotal      Money           `json:"subtotal"`
	Tax           Money           `json:"tax"`
	Total         Money           `json:"total"`
	AmountPaid    Money           `json:"amountPaid"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes"`
	Version       int64           `json:"version"`
	Lines         []InvoiceLine   `json:"lines"`
	AuditFields
}

// BalanceDue is total minus amount_paid.
func (i Invoice) BalanceDue() Money {
	return i.Total - i.AmountPaid
}

// InvoiceLine is a priced line item.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`
	InvoiceID   string          `json:"invoiceID"`
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   Money           `json:"unitPrice"`
	LineTotal   Money           `json:"lineTotal"`
}
