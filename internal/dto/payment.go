package dto

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// AllocationRequest applies part of a payment to one invoice.
type AllocationRequest struct {
	InvoiceID string       `json:"invoiceID"`
	Amount    domain.Money `json:"amount" swaggertype:"string" example:"250.00"`
}

// ApplyPaymentRequest records money received from a customer.
// Allocation amounts are checked by the ledger so errors carry the allocation index.
type ApplyPaymentRequest struct {
	CustomerID  string               `json:"customerID" binding:"required"`
	PaymentDate Date                 `json:"paymentDate" binding:"required" swaggertype:"string" example:"2024-02-01"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=cash bank_transfer check card other"`
	Reference   string               `json:"reference" binding:"max=255"`
	Allocations []AllocationRequest  `json:"allocations"`
}

// ApplyCreditNoteRequest issues a credit note against an invoice.
type ApplyCreditNoteRequest struct {
	InvoiceID string       `json:"invoiceID"`
	NoteDate  Date         `json:"noteDate" binding:"required" swaggertype:"string" example:"2024-02-01"`
	Amount    domain.Money `json:"amount" swaggertype:"string" example:"200.00"`
	Notes     string       `json:"notes" binding:"max=2000"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	CustomerID string `form:"customerID"`
	Limit      int    `form:"limit,default=50" binding:"min=0,max=500"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}
