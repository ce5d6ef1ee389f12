package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type PayablesSuite struct {
	LedgerSuite
}

func TestPayablesSuite(t *testing.T) {
	suite.Run(t, new(PayablesSuite))
}

func (s *PayablesSuite) createExpense(amount string, approved bool) domain.Expense {
	e, err := s.svc.Expense.CreateExpense(s.ctx, dto.CreateExpenseRequest{
		CategoryID:  "office",
		Description: "Printer paper",
		ExpenseDate: dto.NewDate(day(2024, 2, 2)),
		Amount:      money(amount),
		Approved:    approved,
	}, testUser)
	s.Require().NoError(err)
	return *e
}

func (s *PayablesSuite) payExpense(expenseID, amount string) (*domain.ExpensePaymentResult, error) {
	return s.svc.Applier.ApplyExpensePayment(s.ctx, dto.ApplyExpensePaymentRequest{
		ExpenseID:   expenseID,
		PaymentDate: dto.NewDate(day(2024, 2, 10)),
		Method:      domain.MethodCard,
		Amount:      money(amount),
	}, testUser)
}

func (s *PayablesSuite) createProfile(freq domain.Frequency, start time.Time, end *time.Time) domain.RecurringExpenseProfile {
	req := dto.CreateRecurringProfileRequest{
		CategoryID:  "rent",
		Description: "Office rent",
		Amount:      money("1500.00"),
		Frequency:   freq,
		StartDate:   dto.NewDate(start),
	}
	if end != nil {
		d := dto.NewDate(*end)
		req.EndDate = &d
	}
	p, err := s.svc.Recurring.CreateProfile(s.ctx, req, testUser)
	s.Require().NoError(err)
	return *p
}

func (s *PayablesSuite) TestExpensePaymentLifecycle() {
	pending := s.createExpense("120.00", false)
	_, err := s.payExpense(pending.ExpenseID, "10.00")
	s.ErrorIs(err, apperrors.ErrInvalidState)

	approved, err := s.svc.Expense.ApproveExpense(s.ctx, pending.ExpenseID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.ExpenseApproved, approved.Status)

	first, err := s.payExpense(pending.ExpenseID, "20.00")
	s.Require().NoError(err)
	s.Equal(domain.ExpensePartiallyPaid, first.Expense.Status)
	s.Equal(money("100.00"), first.Expense.BalanceDue)

	_, err = s.payExpense(pending.ExpenseID, "100.01")
	s.ErrorIs(err, apperrors.ErrOverApplied)

	second, err := s.payExpense(pending.ExpenseID, "100.00")
	s.Require().NoError(err)
	s.Equal(domain.ExpensePaid, second.Expense.Status)

	_, err = s.svc.Applier.VoidExpensePayment(s.ctx, second.Payment.ExpensePaymentID, testUser)
	s.Require().NoError(err)
	voided, err := s.svc.Applier.VoidExpensePayment(s.ctx, first.Payment.ExpensePaymentID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.ExpenseApproved, voided.Expense.Status)
	s.Equal(domain.Money(0), voided.Expense.AmountPaid)

	payments, err := s.svc.Expense.ListExpensePayments(s.ctx, pending.ExpenseID)
	s.Require().NoError(err)
	s.Empty(payments)
}

func (s *PayablesSuite) TestExpenseRejections() {
	e := s.createExpense("50.00", true)
	_, err := s.payExpense(e.ExpenseID, "0")
	s.ErrorIs(err, apperrors.ErrZeroAmount)
	_, err = s.payExpense("missing", "1.00")
	s.ErrorIs(err, apperrors.ErrLedgerNotFound)

	_, err = s.svc.Expense.RejectExpense(s.ctx, e.ExpenseID, testUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	pending := s.createExpense("50.00", false)
	rejected, err := s.svc.Expense.RejectExpense(s.ctx, pending.ExpenseID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.ExpenseRejected, rejected.Status)
	_, err = s.payExpense(pending.ExpenseID, "1.00")
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PayablesSuite) TestRecurring_MonthlyCatchUpWithLeapClamp() {
	p := s.createProfile(domain.Monthly, day(2024, 1, 31), nil)

	run, err := s.svc.Applier.GenerateRecurringExpensesForProfile(s.ctx, p.ProfileID, day(2024, 4, 15), testUser)
	s.Require().NoError(err)
	s.Require().Len(run.Generated, 3)
	s.Equal(day(2024, 1, 31), run.Generated[0].ExpenseDate)
	s.Equal(day(2024, 2, 29), run.Generated[1].ExpenseDate)
	s.Equal(day(2024, 3, 31), run.Generated[2].ExpenseDate)
	s.Require().NotNil(run.LastGeneratedDate)
	s.Equal(day(2024, 3, 31), *run.LastGeneratedDate)
	s.Equal(domain.RecurringActive, run.Status)

	for _, e := range run.Generated {
		s.Equal(domain.ExpenseApproved, e.Status)
		s.Equal(money("1500.00"), e.Amount)
		s.Require().NotNil(e.RecurringDueDate)
		s.Equal(e.ExpenseDate, *e.RecurringDueDate)
	}

	next, err := s.svc.Recurring.NextDueDate(s.ctx, p.ProfileID)
	s.Require().NoError(err)
	s.Equal(day(2024, 4, 30), next)
}

func (s *PayablesSuite) TestRecurring_Idempotent() {
	p := s.createProfile(domain.Weekly, day(2024, 1, 1), nil)
	asOf := day(2024, 1, 29)

	first, err := s.svc.Applier.GenerateRecurringExpensesForProfile(s.ctx, p.ProfileID, asOf, testUser)
	s.Require().NoError(err)
	s.Len(first.Generated, 5)

	second, err := s.svc.Applier.GenerateRecurringExpensesForProfile(s.ctx, p.ProfileID, asOf, testUser)
	s.Require().NoError(err)
	s.Empty(second.Generated)
	s.Equal(*first.LastGeneratedDate, *second.LastGeneratedDate)

	expenses, err := s.svc.Expense.ListExpenses(s.ctx, dto.ListExpensesParams{RecurringProfileID: p.ProfileID})
	s.Require().NoError(err)
	s.Len(expenses, 5)

	stored, err := s.svc.Recurring.GetProfile(s.ctx, p.ProfileID)
	s.Require().NoError(err)
	s.Equal(day(2024, 1, 29), *stored.LastGeneratedDate)
}

func (s *PayablesSuite) TestRecurring_FinishesAtEndDate() {
	end := day(2024, 3, 15)
	p := s.createProfile(domain.Monthly, day(2024, 1, 15), &end)

	run, err := s.svc.Applier.GenerateRecurringExpensesForProfile(s.ctx, p.ProfileID, day(2024, 12, 31), testUser)
	s.Require().NoError(err)
	s.Len(run.Generated, 3)
	s.Equal(domain.RecurringFinished, run.Status)

	again, err := s.svc.Applier.GenerateRecurringExpensesForProfile(s.ctx, p.ProfileID, day(2025, 12, 31), testUser)
	s.Require().NoError(err)
	s.Empty(again.Generated)

	_, err = s.svc.Recurring.NextDueDate(s.ctx, p.ProfileID)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PayablesSuite) TestRecurring_PausedProfileGeneratesNothingUntilResumed() {
	p := s.createProfile(domain.Monthly, day(2024, 1, 1), nil)
	_, err := s.svc.Recurring.PauseProfile(s.ctx, p.ProfileID, testUser)
	s.Require().NoError(err)

	run, err := s.svc.Applier.GenerateRecurringExpensesForProfile(s.ctx, p.ProfileID, day(2024, 3, 1), testUser)
	s.Require().NoError(err)
	s.Empty(run.Generated)
	s.Equal(domain.RecurringPaused, run.Status)

	_, err = s.svc.Recurring.PauseProfile(s.ctx, p.ProfileID, testUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	resumed, err := s.svc.Recurring.ResumeProfile(s.ctx, p.ProfileID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.RecurringActive, resumed.Status)

	run, err = s.svc.Applier.GenerateRecurringExpensesForProfile(s.ctx, p.ProfileID, day(2024, 3, 1), testUser)
	s.Require().NoError(err)
	s.Len(run.Generated, 3)
}

func (s *PayablesSuite) TestRecurring_BatchRunsEveryActiveProfile() {
	var ids []string
	for i := 1; i <= 6; i++ {
		p := s.createProfile(domain.Monthly, day(2024, time.Month(i), 1), nil)
		ids = append(ids, p.ProfileID)
	}
	_, err := s.svc.Recurring.PauseProfile(s.ctx, ids[5], testUser)
	s.Require().NoError(err)

	results, err := s.svc.Applier.GenerateRecurringExpenses(s.ctx, day(2024, 6, 30), testUser)
	s.Require().NoError(err)
	s.Len(results, 5)

	total := 0
	for _, r := range results {
		total += len(r.Generated)
	}
	// profiles starting Jan..May generate 6+5+4+3+2 months up to June
	s.Equal(20, total, fmt.Sprintf("%+v", results))

	again, err := s.svc.Applier.GenerateRecurringExpenses(s.ctx, day(2024, 6, 30), testUser)
	s.Require().NoError(err)
	for _, r := range again {
		s.Empty(r.Generated)
	}
}
