package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

// InvoiceSvcFacade manages invoices and reads the money applied to them.
// Reads return the effective status, so an unpaid invoice past its due date reads as overdue.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	SendInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)
	CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)
	ReviseInvoiceLines(ctx context.Context, invoiceID string, req dto.ReviseInvoiceLinesRequest, userID string) (*domain.Invoice, error)

	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error)
	GetCreditNote(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)
	ListCreditNotes(ctx context.Context, invoiceID string) ([]domain.CreditNote, error)
}

// BankingSvcFacade manages bank accounts and reconciliation flags.
type BankingSvcFacade interface {
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	GetBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, limit, offset int) ([]domain.BankAccount, error)
	ListBankTransactions(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error)
	ReconcileBankTransaction(ctx context.Context, bankTransactionID string, reconciled bool, userID string) (*domain.BankTransaction, error)
}

// ExpenseSvcFacade manages the approval lifecycle of expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
	ApproveExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error)
	RejectExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error)
	ListExpensePayments(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error)
}

// RecurringProfileSvc manages recurring expense templates.
type RecurringProfileSvc interface {
	CreateProfile(ctx context.Context, req dto.CreateRecurringProfileRequest, userID string) (*domain.RecurringExpenseProfile, error)
	GetProfile(ctx context.Context, profileID string) (*domain.RecurringExpenseProfile, error)
	ListProfiles(ctx context.Context, params dto.ListRecurringProfilesParams) ([]domain.RecurringExpenseProfile, error)
	PauseProfile(ctx context.Context, profileID string, userID string) (*domain.RecurringExpenseProfile, error)

	// ResumeProfile reactivates a paused profile. Periods missed while paused are
	// generated by the next run, within the catch-up cap.
	ResumeProfile(ctx context.Context, profileID string, userID string) (*domain.RecurringExpenseProfile, error)

	// NextDueDate reports when the profile will next produce an expense.
	NextDueDate(ctx context.Context, profileID string) (time.Time, error)
}
