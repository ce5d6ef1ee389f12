package domain

import "time"

// CreditNote reduces what a customer owes on exactly one invoice.
type CreditNote struct {
	CreditNoteID string    `json:"creditNoteID"`
	InvoiceID    string    `json:"invoiceID"`
	NoteDate     time.Time `json:"noteDate"`
	Amount       Money     `json:"amount"`
	Notes        string    `json:"notes"`
	AuditFields
}
