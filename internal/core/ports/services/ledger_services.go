package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

// JournalPostingSvc posts and reverses journal entries.
type JournalPostingSvc interface {
	// PostJournalEntry validates the lines, writes the journal and applies every balance change atomically.
	PostJournalEntry(ctx context.Context, req dto.PostJournalRequest, userID string) (*domain.PostingResult, error)

	// ReverseJournalEntry posts an equal and opposite journal and marks the original REVERSED.
	ReverseJournalEntry(ctx context.Context, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.PostingResult, error)
}

// ReceivablesApplierSvc moves money onto and off invoices.
type ReceivablesApplierSvc interface {
	ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentResult, error)
	VoidPayment(ctx context.Context, paymentID string, userID string) (*domain.PaymentResult, error)
	ApplyCreditNote(ctx context.Context, req dto.ApplyCreditNoteRequest, userID string) (*domain.CreditNoteResult, error)
	VoidCreditNote(ctx context.Context, creditNoteID string, userID string) (*domain.CreditNoteResult, error)
}

// BankApplierSvc keeps bank balances in step with bank transactions.
type BankApplierSvc interface {
	RecordBankTransaction(ctx context.Context, req dto.RecordBankTransactionRequest, userID string) (*domain.BankTransactionResult, error)
	DeleteBankTransaction(ctx context.Context, bankTransactionID string, userID string) (*domain.BankTransactionResult, error)
}

// PayablesApplierSvc pays expenses and generates recurring ones.
type PayablesApplierSvc interface {
	ApplyExpensePayment(ctx context.Context, req dto.ApplyExpensePaymentRequest, userID string) (*domain.ExpensePaymentResult, error)
	VoidExpensePayment(ctx context.Context, expensePaymentID string, userID string) (*domain.ExpensePaymentResult, error)

	// GenerateRecurringExpenses runs every active profile as of asOf, one transaction per profile.
	// Results of successful profiles are returned together with the combined error of the failed ones.
	GenerateRecurringExpenses(ctx context.Context, asOf time.Time, userID string) ([]domain.RecurringRunResult, error)
	GenerateRecurringExpensesForProfile(ctx context.Context, profileID string, asOf time.Time, userID string) (*domain.RecurringRunResult, error)
}

// TransactionApplierSvc is the only writer of balances, amount_paid and bank balances.
type TransactionApplierSvc interface {
	JournalPostingSvc
	ReceivablesApplierSvc
	BankApplierSvc
	PayablesApplierSvc
}

// JournalQuerySvc reads posted journals.
type JournalQuerySvc interface {
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// ConsistencySvc compares materialized values with a full recompute.
type ConsistencySvc interface {
	// Check never corrects anything. Mismatches are listed in the report and
	// returned as a combined IntegrityViolation error.
	Check(ctx context.Context) (*domain.ConsistencyReport, error)
}
