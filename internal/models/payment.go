package models

import "time"

// Payment is a row of the payments table.
type Payment struct {
	PaymentID   string    `db:"payment_id"`
	CustomerID  string    `db:"customer_id"`
	PaymentDate time.Time `db:"payment_date"`
	Method      string    `db:"method"`
	Amount      int64     `db:"amount"`
	Reference   string    `db:"reference"`
	AuditFields
}

// InvoicePayment is a row of the invoice_payments table.
type InvoicePayment struct {
	InvoicePaymentID string `db:"invoice_payment_id"`
	PaymentID        string `db:"payment_id"`
	InvoiceID        string `db:"invoice_id"`
	AmountApplied    int64  `db:"amount_applied"`
}

// CreditNote is a row of the credit_notes table.
type CreditNote struct {
	CreditNoteID string    `db:"credit_note_id"`
	InvoiceID    string    `db:"invoice_id"`
	NoteDate     time.Time `db:"note_date"`
	Amount       int64     `db:"amount"`
	Notes        string    `db:"notes"`
	AuditFields
}
