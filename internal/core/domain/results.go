package domain

import "time"

// InvoiceBalance is the post-operation state of one invoice.
type InvoiceBalance struct {
	InvoiceID  string        `json:"invoiceID"`
	Total      Money         `json:"total"`
	AmountPaid Money         `json:"amountPaid"`
	BalanceDue Money         `json:"balanceDue"`
	Status     InvoiceStatus `json:"status"`
}

// NewInvoiceBalance snapshots an invoice.
func NewInvoiceBalance(inv Invoice) InvoiceBalance {
	return InvoiceBalance{
		InvoiceID:  inv.InvoiceID,
		Total:      inv.Total,
		AmountPaid: inv.AmountPaid,
		BalanceDue: inv.BalanceDue(),
		Status:     inv.Status,
	}
}

// ExpenseBalance is the post-operation state of one expense.
type ExpenseBalance struct {
	ExpenseID  string        `json:"expenseID"`
	Amount     Money         `json:"amount"`
	AmountPaid Money         `json:"amountPaid"`
	BalanceDue Money         `json:"balanceDue"`
	Status     ExpenseStatus `json:"status"`
}

// NewExpenseBalance snapshots an expense.
func NewExpenseBalance(e Expense) ExpenseBalance {
	return ExpenseBalance{
		ExpenseID:  e.ExpenseID,
		Amount:     e.Amount,
		AmountPaid: e.AmountPaid,
		BalanceDue: e.BalanceDue(),
		Status:     e.Status,
	}
}

// PostingResult is returned after a journal is posted or reversed.
type PostingResult struct {
	Journal Journal `json:"journal"`
	// Balances holds the materialized balance of every account the journal touched.
	Balances map[string]Money `json:"balances"`
}

// PaymentResult is returned by ApplyPayment and VoidPayment.
type PaymentResult struct {
	Payment  Payment          `json:"payment"`
	Invoices []InvoiceBalance `json:"invoices"`
}

// CreditNoteResult is returned by ApplyCreditNote and VoidCreditNote.
type CreditNoteResult struct {
	CreditNote CreditNote     `json:"creditNote"`
	Invoice    InvoiceBalance `json:"invoice"`
}

// BankTransactionResult is returned by RecordBankTransaction and DeleteBankTransaction.
type BankTransactionResult struct {
	Transaction    BankTransaction `json:"transaction"`
	CurrentBalance Money           `json:"currentBalance"`
}

// ExpensePaymentResult is returned by ApplyExpensePayment and VoidExpensePayment.
type ExpensePaymentResult struct {
	Payment ExpensePayment `json:"payment"`
	Expense ExpenseBalance `json:"expense"`
}

// RecurringRunResult describes one profile's generation run.
type RecurringRunResult struct {
	ProfileID         string          `json:"profileID"`
	Generated         []Expense       `json:"generated"`
	LastGeneratedDate *time.Time      `json:"lastGeneratedDate,omitempty"`
	Status            RecurringStatus `json:"status"`
}

// Mismatch is one materialized value that disagrees with its full recompute.
type Mismatch struct {
	Entity       string `json:"entity"`
	EntityID     string `json:"entityID"`
	Field        string `json:"field"`
	Materialized Money  `json:"materialized"`
	Recomputed   Money  `json:"recomputed"`
}

// ConsistencyReport summarizes a full-recompute audit.
type ConsistencyReport struct {
	CheckedAt           time.Time  `json:"checkedAt"`
	AccountsChecked     int        `json:"accountsChecked"`
	BankAccountsChecked int        `json:"bankAccountsChecked"`
	InvoicesChecked     int        `json:"invoicesChecked"`
	ExpensesChecked     int        `json:"expensesChecked"`
	Mismatches          []Mismatch `json:"mismatches"`
}

// Consistent reports whether no mismatch was found.
func (r ConsistencyReport) Consistent() bool { return len(r.Mismatches) == 0 }
