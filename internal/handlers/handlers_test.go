package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/handlers"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

var testNow = time.Date(2024, 4, 15, 10, 30, 0, 0, time.UTC)

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	jwtSecret   string
	account     *MockAccountService
	applier     *MockApplier
	journal     *MockJournalQuery
	invoice     *MockInvoiceService
	banking     *MockBankingService
	expense     *MockExpenseService
	recurring   *MockRecurringService
	consistency *MockConsistencyService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	services := &portssvc.ServiceContainer{
		Applier:     suite.applier,
		Account:     suite.account,
		Journal:     suite.journal,
		Invoice:     suite.invoice,
		Banking:     suite.banking,
		Expense:     suite.expense,
		Recurring:   suite.recurring,
		Consistency: suite.consistency,
	}
	opts := handlers.Options{
		CurrencyFormat: utils.DefaultCurrencyFormat,
		Now:            func() time.Time { return testNow },
	}
	suite.Require().NoError(handlers.RegisterRoutes(router, cfg, services, opts))
	return router
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.account = new(MockAccountService)
	suite.applier = new(MockApplier)
	suite.journal = new(MockJournalQuery)
	suite.invoice = new(MockInvoiceService)
	suite.banking = new(MockBankingService)
	suite.expense = new(MockExpenseService)
	suite.recurring = new(MockRecurringService)
	suite.consistency = new(MockConsistencyService)

	suite.router = suite.newRouter(&config.Config{
		JWTSecret:          suite.jwtSecret,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		IsProduction:       true,
	})
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.account.AssertExpectations(suite.T())
	suite.applier.AssertExpectations(suite.T())
	suite.journal.AssertExpectations(suite.T())
	suite.invoice.AssertExpectations(suite.T())
	suite.banking.AssertExpectations(suite.T())
	suite.expense.AssertExpectations(suite.T())
	suite.recurring.AssertExpectations(suite.T())
	suite.consistency.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "ledger-test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestExpiredToken() {
	token, err := utils.GenerateJWT(testUserID, suite.jwtSecret, -time.Minute, "ledger-test")
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "expired")
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	suite.account.On("CreateAccount", mock.Anything,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Name == "Cash" && req.AccountType == domain.AccountAsset
		}),
		testUserID,
	).Return(&domain.Account{AccountID: "acc-1", Name: "Cash", AccountType: domain.AccountAsset, Balance: 123450, IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"name":"Cash","accountType":"ASSET"}`)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal(domain.Money(123450), resp.Balance)
	suite.Equal("$1,234.50", resp.FormattedBalance)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"name":"Cash","accountType":"CASH"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.account.On("GetAccountByID", mock.Anything, "missing").
		Return(nil, apperrors.New(apperrors.KindNotFound, "account missing")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/missing", "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NotFound", suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestGetAccount_InternalErrorIsHidden() {
	suite.account.On("GetAccountByID", mock.Anything, "acc-1").
		Return(nil, errors.New("connection refused")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("Failed to retrieve account", resp.Error)
	suite.NotContains(w.Body.String(), "connection refused")
}

func (suite *HandlerTestSuite) TestDeleteAccount_WithPostings() {
	suite.account.On("DeleteAccount", mock.Anything, "acc-1", testUserID).
		Return(apperrors.New(apperrors.KindInvalidState, "account acc-1 has postings")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/acc-1", "")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestPostJournal_Success() {
	result := &domain.PostingResult{
		Journal:  domain.Journal{JournalID: "j-1", Amount: 10000},
		Balances: map[string]domain.Money{"cash": 10000, "revenue": 10000},
	}
	suite.applier.On("PostJournalEntry", mock.Anything,
		mock.MatchedBy(func(req dto.PostJournalRequest) bool {
			return len(req.Lines) == 2 &&
				req.Lines[0].Debit == 10000 &&
				req.Lines[1].Credit == 10000 &&
				req.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
		}),
		testUserID,
	).Return(result, nil).Once()

	body := `{"date":"2024-01-15","description":"Sale","lines":[
		{"accountID":"cash","debit":"100.00"},
		{"accountID":"revenue","credit":"100.00"}]}`
	w := suite.do(http.MethodPost, "/api/v1/journals", body)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("100.00", resp["balances"].(map[string]any)["cash"])
}

func (suite *HandlerTestSuite) TestPostJournal_UnbalancedReportsLineIndex() {
	suite.applier.On("PostJournalEntry", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.NewLineError(apperrors.KindUnbalanced, 1, "debits 100.00 != credits 90.00")).Once()

	body := `{"date":"2024-01-15","lines":[
		{"accountID":"cash","debit":"100.00"},
		{"accountID":"revenue","credit":"90.00"}]}`
	w := suite.do(http.MethodPost, "/api/v1/journals", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("Unbalanced", resp.Kind)
	suite.Require().NotNil(resp.Index)
	suite.Equal(1, *resp.Index)
}

func (suite *HandlerTestSuite) TestPostJournal_MissingDate() {
	w := suite.do(http.MethodPost, "/api/v1/journals", `{"lines":[]}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestReverseJournal_AlreadyReversed() {
	suite.applier.On("ReverseJournalEntry", mock.Anything, "j-1", dto.ReverseJournalRequest{}, testUserID).
		Return(nil, apperrors.New(apperrors.KindInvalidState, "journal j-1 is already reversed")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/j-1/reverse", "")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("InvalidState", suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestListJournals() {
	next := "tok"
	suite.journal.On("ListJournals", mock.Anything,
		mock.MatchedBy(func(p dto.ListJournalsParams) bool { return p.Limit == 20 && p.NextToken == nil }),
	).Return(&dto.ListJournalsResponse{Journals: []domain.Journal{{JournalID: "j-2"}}, NextToken: &next}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals", "")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Journals, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("tok", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListJournals_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/v1/journals?limit=500", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListJournals_BadToken() {
	suite.journal.On("ListJournals", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: malformed next token", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals?nextToken=garbage", "")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestApplyPayment_ConcurrentModification() {
	suite.applier.On("ApplyPayment", mock.Anything,
		mock.MatchedBy(func(req dto.ApplyPaymentRequest) bool {
			return req.CustomerID == "cust-1" && len(req.Allocations) == 1 && req.Allocations[0].Amount == 10000
		}),
		testUserID,
	).Return(nil, apperrors.Wrap(apperrors.KindConcurrentModification, errors.New("version mismatch"), "invoice inv-1")).Once()

	body := `{"customerID":"cust-1","paymentDate":"2024-02-01","method":"cash",
		"allocations":[{"invoiceID":"inv-1","amount":"100.00"}]}`
	w := suite.do(http.MethodPost, "/api/v1/payments", body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("ConcurrentModification", suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestApplyPayment_OverAppliedAllocation() {
	suite.applier.On("ApplyPayment", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.NewLineError(apperrors.KindOverApplied, 0, "allocation exceeds balance due")).Once()

	body := `{"customerID":"cust-1","paymentDate":"2024-02-01","method":"card",
		"allocations":[{"invoiceID":"inv-1","amount":"900.00"}]}`
	w := suite.do(http.MethodPost, "/api/v1/payments", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("OverApplied", resp.Kind)
	suite.Require().NotNil(resp.Index)
	suite.Equal(0, *resp.Index)
}

func (suite *HandlerTestSuite) TestApplyCreditNote_UsesInvoiceFromPath() {
	suite.applier.On("ApplyCreditNote", mock.Anything,
		mock.MatchedBy(func(req dto.ApplyCreditNoteRequest) bool {
			return req.InvoiceID == "inv-1" && req.Amount == 5000
		}),
		testUserID,
	).Return(&domain.CreditNoteResult{
		CreditNote: domain.CreditNote{CreditNoteID: "cn-1", InvoiceID: "inv-1", Amount: 5000},
		Invoice:    domain.InvoiceBalance{InvoiceID: "inv-1", Total: 20000, AmountPaid: 5000, BalanceDue: 15000, Status: domain.InvoicePartiallyPaid},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/credit-notes", `{"invoiceID":"other","noteDate":"2024-02-01","amount":"50.00"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestSendInvoice() {
	suite.invoice.On("SendInvoice", mock.Anything, "inv-1", testUserID).
		Return(&domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoiceSent}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/send", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"sent"`)
}

func (suite *HandlerTestSuite) TestRecordBankTransaction_UsesAccountFromPath() {
	suite.applier.On("RecordBankTransaction", mock.Anything,
		mock.MatchedBy(func(req dto.RecordBankTransactionRequest) bool {
			return req.BankAccountID == "ba-1" && req.Type == domain.Deposit && req.Amount == 7500
		}),
		testUserID,
	).Return(&domain.BankTransactionResult{
		Transaction:    domain.BankTransaction{BankTransactionID: "bt-1", BankAccountID: "ba-1", Type: domain.Deposit, Amount: 7500},
		CurrentBalance: 7500,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts/ba-1/transactions", `{"transactionDate":"2024-02-01","type":"deposit","amount":"75.00"}`)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"currentBalance":"75.00"`)
}

func (suite *HandlerTestSuite) TestListBankAccounts_FormatsBalance() {
	suite.banking.On("ListBankAccounts", mock.Anything, 10, 0).
		Return([]domain.BankAccount{{BankAccountID: "ba-1", Name: "Operating", CurrentBalance: 250000}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/bank-accounts?limit=10", "")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.BankAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("$2,500.00", resp[0].FormattedBalance)
	suite.Equal("ba-1", resp[0].BankAccountID)
}

func (suite *HandlerTestSuite) TestListBankAccounts_BadLimit() {
	w := suite.do(http.MethodGet, "/api/v1/bank-accounts?limit=abc", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestApplyExpensePayment_NotApproved() {
	suite.applier.On("ApplyExpensePayment", mock.Anything,
		mock.MatchedBy(func(req dto.ApplyExpensePaymentRequest) bool { return req.ExpenseID == "exp-1" }),
		testUserID,
	).Return(nil, apperrors.New(apperrors.KindInvalidState, "expense exp-1 is pending")).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses/exp-1/payments", `{"paymentDate":"2024-01-20","method":"bank_transfer","amount":"60.00"}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestGenerateForProfile_DefaultsToToday() {
	today := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	suite.applier.On("GenerateRecurringExpensesForProfile", mock.Anything, "prof-1", today, testUserID).
		Return(&domain.RecurringRunResult{ProfileID: "prof-1", Status: domain.RecurringActive}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/recurring-profiles/prof-1/generate", "")

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestGenerateAll_PartialFailure() {
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.applier.On("GenerateRecurringExpenses", mock.Anything, asOf, testUserID).
		Return([]domain.RecurringRunResult{{ProfileID: "prof-1", Generated: []domain.Expense{{ExpenseID: "exp-1"}}}},
			apperrors.New(apperrors.KindConcurrentModification, "profile prof-2")).Once()

	w := suite.do(http.MethodPost, "/api/v1/recurring/generate", `{"asOf":"2024-03-31"}`)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp["results"], 1)
	suite.Contains(resp["errors"], "prof-2")
}

func (suite *HandlerTestSuite) TestNextDue() {
	suite.recurring.On("NextDueDate", mock.Anything, "prof-1").
		Return(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/recurring-profiles/prof-1/next-due", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"nextDue":"2024-02-29"`)
}

func (suite *HandlerTestSuite) TestConsistencyReport_MismatchesStillReturned() {
	report := &domain.ConsistencyReport{
		CheckedAt:       testNow,
		AccountsChecked: 2,
		Mismatches: []domain.Mismatch{
			{Entity: "account", EntityID: "cash", Field: "balance", Materialized: 10000, Recomputed: 9000},
		},
	}
	suite.consistency.On("Check", mock.Anything).
		Return(report, apperrors.New(apperrors.KindIntegrityViolation, "1 mismatch")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/consistency", "")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp domain.ConsistencyReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Mismatches, 1)
	suite.Equal(domain.Money(9000), resp.Mismatches[0].Recomputed)
}

func TestAuthDisabledRunsAsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	account := new(MockAccountService)
	account.On("ListAccounts", mock.Anything, mock.Anything).Return([]domain.Account{}, nil).Once()
	account.On("DeleteAccount", mock.Anything, "acc-1", middleware.AnonymousUserID).Return(nil).Once()

	router := gin.New()
	services := &portssvc.ServiceContainer{Account: account}
	require.NoError(t, handlers.RegisterRoutes(router, &config.Config{AuthDisabled: true, IsProduction: true}, services, handlers.Options{}))

	for _, tc := range []struct {
		method string
		status int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodDelete, http.StatusNoContent},
	} {
		url := "/api/v1/accounts"
		if tc.method == http.MethodDelete {
			url += "/acc-1"
		}
		req, _ := http.NewRequest(tc.method, url, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, tc.status, w.Code, w.Body.String())
	}
	account.AssertExpectations(t)
}
