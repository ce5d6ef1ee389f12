package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUser = "user-1"

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) domain.Money {
	return domain.MustParseMoney(s)
}

func testConfig() *config.Config {
	return &config.Config{
		ConflictMaxRetries:  3,
		RecurringMaxCatchUp: 36,
		RecurringWorkers:    4,
	}
}

// LedgerSuite runs every test against a fresh in-memory store.
type LedgerSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.svc = services.NewServiceContainer(testConfig(), s.store.Repositories(), s.store,
		services.WithClock(func() time.Time { return testNow }))
}

func (s *LedgerSuite) createAccount(name string, accountType domain.AccountType) domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: name, AccountType: accountType}, testUser)
	s.Require().NoError(err)
	return *acc
}

func (s *LedgerSuite) balanceOf(accountID string) domain.Money {
	acc, err := s.svc.Account.GetAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *LedgerSuite) post(date time.Time, lines ...dto.JournalLineRequest) (*domain.PostingResult, error) {
	return s.svc.Applier.PostJournalEntry(s.ctx, dto.PostJournalRequest{
		Date:        dto.NewDate(date),
		Description: "test entry",
		Lines:       lines,
	}, testUser)
}

func debit(accountID, amount string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Debit: money(amount)}
}

func credit(accountID, amount string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Credit: money(amount)}
}

// createInvoice creates a single-line invoice without tax and sends it.
func (s *LedgerSuite) createInvoice(customerID, number, total string) domain.Invoice {
	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, dto.CreateInvoiceRequest{
		CustomerID:    customerID,
		InvoiceNumber: number,
		IssueDate:     dto.NewDate(day(2024, 2, 1)),
		DueDate:       dto.NewDate(day(2024, 3, 31)),
		TaxRate:       decimal.Zero,
		Lines: []dto.InvoiceLineRequest{
			{Description: "Services", Quantity: decimal.NewFromInt(1), UnitPrice: money(total)},
		},
	}, testUser)
	s.Require().NoError(err)
	sent, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	return *sent
}

func (s *LedgerSuite) invoice(invoiceID string) domain.Invoice {
	inv, err := s.svc.Invoice.GetInvoice(s.ctx, invoiceID)
	s.Require().NoError(err)
	return *inv
}

func (s *LedgerSuite) pay(customerID string, allocations ...dto.AllocationRequest) (*domain.PaymentResult, error) {
	return s.svc.Applier.ApplyPayment(s.ctx, dto.ApplyPaymentRequest{
		CustomerID:  customerID,
		PaymentDate: dto.NewDate(day(2024, 2, 15)),
		Method:      domain.MethodBankTransfer,
		Allocations: allocations,
	}, testUser)
}

func alloc(invoiceID, amount string) dto.AllocationRequest {
	return dto.AllocationRequest{InvoiceID: invoiceID, Amount: money(amount)}
}
