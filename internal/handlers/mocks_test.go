package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// ret splits a mock return into a typed pointer and an error.
func ret[T any](args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return ret[*domain.Account](m.Called(ctx, accountID))
}
func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	return ret[[]domain.Account](m.Called(ctx, params))
}
func (m *MockAccountService) ListAccountPostings(ctx context.Context, accountID string) ([]domain.JournalLine, error) {
	return ret[[]domain.JournalLine](m.Called(ctx, accountID))
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	return ret[*domain.Account](m.Called(ctx, req, userID))
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	return ret[*domain.Account](m.Called(ctx, accountID, req, userID))
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	return m.Called(ctx, accountID, userID).Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionApplier ---
type MockApplier struct {
	mock.Mock
}

func (m *MockApplier) PostJournalEntry(ctx context.Context, req dto.PostJournalRequest, userID string) (*domain.PostingResult, error) {
	return ret[*domain.PostingResult](m.Called(ctx, req, userID))
}
func (m *MockApplier) ReverseJournalEntry(ctx context.Context, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.PostingResult, error) {
	return ret[*domain.PostingResult](m.Called(ctx, journalID, req, userID))
}
func (m *MockApplier) ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentResult, error) {
	return ret[*domain.PaymentResult](m.Called(ctx, req, userID))
}
func (m *MockApplier) VoidPayment(ctx context.Context, paymentID string, userID string) (*domain.PaymentResult, error) {
	return ret[*domain.PaymentResult](m.Called(ctx, paymentID, userID))
}
func (m *MockApplier) ApplyCreditNote(ctx context.Context, req dto.ApplyCreditNoteRequest, userID string) (*domain.CreditNoteResult, error) {
	return ret[*domain.CreditNoteResult](m.Called(ctx, req, userID))
}
func (m *MockApplier) VoidCreditNote(ctx context.Context, creditNoteID string, userID string) (*domain.CreditNoteResult, error) {
	return ret[*domain.CreditNoteResult](m.Called(ctx, creditNoteID, userID))
}
func (m *MockApplier) RecordBankTransaction(ctx context.Context, req dto.RecordBankTransactionRequest, userID string) (*domain.BankTransactionResult, error) {
	return ret[*domain.BankTransactionResult](m.Called(ctx, req, userID))
}
func (m *MockApplier) DeleteBankTransaction(ctx context.Context, bankTransactionID string, userID string) (*domain.BankTransactionResult, error) {
	return ret[*domain.BankTransactionResult](m.Called(ctx, bankTransactionID, userID))
}
func (m *MockApplier) ApplyExpensePayment(ctx context.Context, req dto.ApplyExpensePaymentRequest, userID string) (*domain.ExpensePaymentResult, error) {
	return ret[*domain.ExpensePaymentResult](m.Called(ctx, req, userID))
}
func (m *MockApplier) VoidExpensePayment(ctx context.Context, expensePaymentID string, userID string) (*domain.ExpensePaymentResult, error) {
	return ret[*domain.ExpensePaymentResult](m.Called(ctx, expensePaymentID, userID))
}
func (m *MockApplier) GenerateRecurringExpenses(ctx context.Context, asOf time.Time, userID string) ([]domain.RecurringRunResult, error) {
	return ret[[]domain.RecurringRunResult](m.Called(ctx, asOf, userID))
}
func (m *MockApplier) GenerateRecurringExpensesForProfile(ctx context.Context, profileID string, asOf time.Time, userID string) (*domain.RecurringRunResult, error) {
	return ret[*domain.RecurringRunResult](m.Called(ctx, profileID, asOf, userID))
}

var _ portssvc.TransactionApplierSvc = (*MockApplier)(nil)

// --- Mock JournalQuery ---
type MockJournalQuery struct {
	mock.Mock
}

func (m *MockJournalQuery) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return ret[*domain.Journal](m.Called(ctx, journalID))
}
func (m *MockJournalQuery) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	return ret[*dto.ListJournalsResponse](m.Called(ctx, params))
}

var _ portssvc.JournalQuerySvc = (*MockJournalQuery)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	return ret[*domain.Invoice](m.Called(ctx, req, userID))
}
func (m *MockInvoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return ret[*domain.Invoice](m.Called(ctx, invoiceID))
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	return ret[[]domain.Invoice](m.Called(ctx, params))
}
func (m *MockInvoiceService) SendInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	return ret[*domain.Invoice](m.Called(ctx, invoiceID, userID))
}
func (m *MockInvoiceService) CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	return ret[*domain.Invoice](m.Called(ctx, invoiceID, userID))
}
func (m *MockInvoiceService) ReviseInvoiceLines(ctx context.Context, invoiceID string, req dto.ReviseInvoiceLinesRequest, userID string) (*domain.Invoice, error) {
	return ret[*domain.Invoice](m.Called(ctx, invoiceID, req, userID))
}
func (m *MockInvoiceService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return ret[*domain.Payment](m.Called(ctx, paymentID))
}
func (m *MockInvoiceService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error) {
	return ret[[]domain.Payment](m.Called(ctx, params))
}
func (m *MockInvoiceService) GetCreditNote(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	return ret[*domain.CreditNote](m.Called(ctx, creditNoteID))
}
func (m *MockInvoiceService) ListCreditNotes(ctx context.Context, invoiceID string) ([]domain.CreditNote, error) {
	return ret[[]domain.CreditNote](m.Called(ctx, invoiceID))
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock BankingService ---
type MockBankingService struct {
	mock.Mock
}

func (m *MockBankingService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	return ret[*domain.BankAccount](m.Called(ctx, req, userID))
}
func (m *MockBankingService) GetBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return ret[*domain.BankAccount](m.Called(ctx, bankAccountID))
}
func (m *MockBankingService) ListBankAccounts(ctx context.Context, limit, offset int) ([]domain.BankAccount, error) {
	return ret[[]domain.BankAccount](m.Called(ctx, limit, offset))
}
func (m *MockBankingService) ListBankTransactions(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error) {
	return ret[[]domain.BankTransaction](m.Called(ctx, bankAccountID))
}
func (m *MockBankingService) ReconcileBankTransaction(ctx context.Context, bankTransactionID string, reconciled bool, userID string) (*domain.BankTransaction, error) {
	return ret[*domain.BankTransaction](m.Called(ctx, bankTransactionID, reconciled, userID))
}

var _ portssvc.BankingSvcFacade = (*MockBankingService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	return ret[*domain.Expense](m.Called(ctx, req, userID))
}
func (m *MockExpenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return ret[*domain.Expense](m.Called(ctx, expenseID))
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	return ret[[]domain.Expense](m.Called(ctx, params))
}
func (m *MockExpenseService) ApproveExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error) {
	return ret[*domain.Expense](m.Called(ctx, expenseID, userID))
}
func (m *MockExpenseService) RejectExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error) {
	return ret[*domain.Expense](m.Called(ctx, expenseID, userID))
}
func (m *MockExpenseService) ListExpensePayments(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error) {
	return ret[[]domain.ExpensePayment](m.Called(ctx, expenseID))
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock RecurringProfileService ---
type MockRecurringService struct {
	mock.Mock
}

func (m *MockRecurringService) CreateProfile(ctx context.Context, req dto.CreateRecurringProfileRequest, userID string) (*domain.RecurringExpenseProfile, error) {
	return ret[*domain.RecurringExpenseProfile](m.Called(ctx, req, userID))
}
func (m *MockRecurringService) GetProfile(ctx context.Context, profileID string) (*domain.RecurringExpenseProfile, error) {
	return ret[*domain.RecurringExpenseProfile](m.Called(ctx, profileID))
}
func (m *MockRecurringService) ListProfiles(ctx context.Context, params dto.ListRecurringProfilesParams) ([]domain.RecurringExpenseProfile, error) {
	return ret[[]domain.RecurringExpenseProfile](m.Called(ctx, params))
}
func (m *MockRecurringService) PauseProfile(ctx context.Context, profileID string, userID string) (*domain.RecurringExpenseProfile, error) {
	return ret[*domain.RecurringExpenseProfile](m.Called(ctx, profileID, userID))
}
func (m *MockRecurringService) ResumeProfile(ctx context.Context, profileID string, userID string) (*domain.RecurringExpenseProfile, error) {
	return ret[*domain.RecurringExpenseProfile](m.Called(ctx, profileID, userID))
}
func (m *MockRecurringService) NextDueDate(ctx context.Context, profileID string) (time.Time, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(time.Time), args.Error(1)
}

var _ portssvc.RecurringProfileSvc = (*MockRecurringService)(nil)

// --- Mock ConsistencyService ---
type MockConsistencyService struct {
	mock.Mock
}

func (m *MockConsistencyService) Check(ctx context.Context) (*domain.ConsistencyReport, error) {
	return ret[*domain.ConsistencyReport](m.Called(ctx))
}

var _ portssvc.ConsistencySvc = (*MockConsistencyService)(nil)
