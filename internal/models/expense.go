package models

import "time"

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID          string     `db:"expense_id"`
	CategoryID         string     `db:"category_id"`
	VendorID           *string    `db:"vendor_id"`
	Description        string     `db:"description"`
	ExpenseDate        time.Time  `db:"expense_date"`
	Amount             int64      `db:"amount"`
	AmountPaid         int64      `db:"amount_paid"`
	Status             string     `db:"status"`
	RecurringProfileID *string    `db:"recurring_profile_id"`
	RecurringDueDate   *time.Time `db:"recurring_due_date"`
	DocumentID         *int64     `db:"document_id"`
	Version            int64      `db:"version"`
	AuditFields
}

// ExpensePayment is a row of the expense_payments table.
type ExpensePayment struct {
	ExpensePaymentID string    `db:"expense_payment_id"`
	ExpenseID        string    `db:"expense_id"`
	PaymentDate      time.Time `db:"payment_date"`
	Method           string    `db:"method"`
	Amount           int64     `db:"amount"`
	Reference        string    `db:"reference"`
	AuditFields
}

// RecurringExpenseProfile is a row of the recurring_expense_profiles table.
type RecurringExpenseProfile struct {
	ProfileID         string     `db:"profile_id"`
	CategoryID        string     `db:"category_id"`
	VendorID          *string    `db:"vendor_id"`
	Description       string     `db:"description"`
	Amount            int64      `db:"amount"`
	Frequency         string     `db:"frequency"`
	StartDate         time.Time  `db:"start_date"`
	EndDate           *time.Time `db:"end_date"`
	Status            string     `db:"status"`
	LastGeneratedDate *time.Time `db:"last_generated_date"`
	Version           int64      `db:"version"`
	AuditFields
}
