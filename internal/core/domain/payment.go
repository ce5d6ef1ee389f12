package domain

import "time"

// PaymentMethod is how money was received or paid out.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodCard         PaymentMethod = "card"
	MethodOther        PaymentMethod = "other"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck, MethodCard, MethodOther:
		return true
	}
	return false
}

// Payment is cash received from one customer, fanned out over invoices.
// Amount always equals the sum of its allocations.
type Payment struct {
	PaymentID   string           `json:"paymentID"`
	CustomerID  string           `json:"customerID"`
	PaymentDate time.Time        `json:"paymentDate"`
	Method      PaymentMethod    `json:"method"`
	Amount      Money            `json:"amount"`
	Reference   string           `json:"reference"`
	Allocations []InvoicePayment `json:"allocations"`
	AuditFields
}

// InvoicePayment links part of a payment to one invoice.
type InvoicePayment struct {
	InvoicePaymentID string `json:"invoicePaymentID"`
	PaymentID        string `json:"paymentID"`
	InvoiceID        string `json:"invoiceID"`
	AmountApplied    Money  `json:"amountApplied"`
}
