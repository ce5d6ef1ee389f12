package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	CustomerID    string          `db:"customer_id"`
	InvoiceNumber string          `db:"invoice_number"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       time.Time       `db:"due_date"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	Subtotal      int64           `db:"subtotal"`
	Tax           int64           `db:"tax"`
	Total         int64           `db:"total"`
	AmountPaid    int64           `db:"amount_paid"`
	Status        string          `db:"status"`
	Notes         string          `db:"notes"`
	Version       int64           `db:"version"`
	AuditFields
}

// InvoiceLine is a row of the invoice_lines table.
type InvoiceLine struct {
	LineID      string          `db:"line_id"`
	InvoiceID   string          `db:"invoice_id"`
	LineNo      int             `db:"line_no"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   int64           `db:"unit_price"`
	LineTotal   int64           `db:"line_total"`
}
