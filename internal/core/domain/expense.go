package domain

import "time"

// ExpenseStatus is the approval and payment state of an expense.
type ExpenseStatus string

const (
	ExpensePending       ExpenseStatus = "pending"
	ExpenseApproved      ExpenseStatus = "approved"
	ExpensePartiallyPaid ExpenseStatus = "partially_paid"
	ExpensePaid          ExpenseStatus = "paid"
	ExpenseRejected      ExpenseStatus = "rejected"
)

// AcceptsPayments reports whether a payment may be recorded against the expense.
func (s ExpenseStatus) AcceptsPayments() bool {
	return s == ExpenseApproved || s == ExpensePartiallyPaid
}

// Expense is a concrete spend record, optionally generated from a recurring profile.
type Expense struct {
	ExpenseID   string        `json:"expenseID"`
	CategoryID  string        `json:"categoryID"`
	VendorID    *string       `json:"vendorID,omitempty"`
	Description string        `json:"description"`
	ExpenseDate time.Time     `json:"expenseDate"`
	Amount      Money         `json:"amount"`
	AmountPaid  Money         `json:"amountPaid"`
	Status      ExpenseStatus `json:"status"`
	// RecurringProfileID and RecurringDueDate identify the generated period;
	// the pair is unique.
	RecurringProfileID *string    `json:"recurringProfileID,omitempty"`
	RecurringDueDate   *time.Time `json:"recurringDueDate,omitempty"`
	DocumentID         *int64     `json:"documentID,omitempty"` // uploaded receipt
	Version            int64      `json:"version"`
	AuditFields
}

// BalanceDue is amount minus amount_paid.
func (e Expense) BalanceDue() Money {
	return e.Amount - e.AmountPaid
}

// ExpensePayment is money paid out against a single expense.
type ExpensePayment struct {
	ExpensePaymentID string        `json:"expensePaymentID"`
	ExpenseID        string        `json:"expenseID"`
	PaymentDate      time.Time     `json:"paymentDate"`
	Method           PaymentMethod `json:"method"`
	Amount           Money         `json:"amount"`
	Reference        string        `json:"reference"`
	AuditFields
}
