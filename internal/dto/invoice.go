package dto

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is a priced line; line total = quantity x unit price, rounded half-up.
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"decimal_positive" swaggertype:"string" example:"2"`
	UnitPrice   domain.Money    `json:"unitPrice" binding:"money_nonnegative" swaggertype:"string" example:"49.99"`
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
type CreateInvoiceRequest struct {
	CustomerID    string               `json:"customerID" binding:"required"`
	InvoiceNumber string               `json:"invoiceNumber" binding:"required,max=50"`
	IssueDate     Date                 `json:"issueDate" binding:"required" swaggertype:"string" example:"2024-01-15"`
	DueDate       Date                 `json:"dueDate" binding:"required" swaggertype:"string" example:"2024-02-14"`
	TaxRate       decimal.Decimal      `json:"taxRate" binding:"decimal_nonnegative" swaggertype:"string" example:"7.5"`
	Notes         string               `json:"notes" binding:"max=2000"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReviseInvoiceLinesRequest replaces the lines of an invoice that has no money applied yet.
type ReviseInvoiceLinesRequest struct {
	TaxRate decimal.Decimal      `json:"taxRate" binding:"decimal_nonnegative" swaggertype:"string" example:"7.5"`
	Lines   []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	CustomerID string               `form:"customerID"`
	Status     domain.InvoiceStatus `form:"status" binding:"omitempty,oneof=draft sent partially_paid paid cancelled"`
	Limit      int                  `form:"limit,default=50" binding:"min=0,max=500"`
	Offset     int                  `form:"offset,default=0" binding:"min=0"`
}
