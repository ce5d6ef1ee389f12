package dto

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// CreateExpenseRequest records a one-off expense, pending approval unless Approved is set.
type CreateExpenseRequest struct {
	CategoryID  string       `json:"categoryID" binding:"required"`
	VendorID    *string      `json:"vendorID"`
	Description string       `json:"description" binding:"required,max=500"`
	ExpenseDate Date         `json:"expenseDate" binding:"required" swaggertype:"string" example:"2024-01-10"`
	Amount      domain.Money `json:"amount" binding:"money_positive" swaggertype:"string" example:"120.00"`
	DocumentID  *int64       `json:"documentID"`
	Approved    bool         `json:"approved"`
}

// ApplyExpensePaymentRequest pays part or all of an approved expense.
type ApplyExpensePaymentRequest struct {
	ExpenseID   string               `json:"expenseID"`
	PaymentDate Date                 `json:"paymentDate" binding:"required" swaggertype:"string" example:"2024-01-20"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=cash bank_transfer check card other"`
	Amount      domain.Money         `json:"amount" swaggertype:"string" example:"60.00"`
	Reference   string               `json:"reference" binding:"max=255"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Status             domain.ExpenseStatus `form:"status" binding:"omitempty,oneof=pending approved partially_paid paid rejected"`
	RecurringProfileID string               `form:"recurringProfileID"`
	Limit              int                  `form:"limit,default=50" binding:"min=0,max=500"`
	Offset             int                  `form:"offset,default=0" binding:"min=0"`
}
