package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/google/uuid"
)

// expenseService manages the approval lifecycle of expenses.
type expenseService struct {
	BaseService
}

// NewExpenseService creates a new expense service.
func NewExpenseService(base BaseService) portssvc.ExpenseSvcFacade {
	return &expenseService{BaseService: base}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	status := domain.ExpensePending
	if req.Approved {
		status = domain.ExpenseApproved
	}
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		CategoryID:  req.CategoryID,
		VendorID:    req.VendorID,
		Description: req.Description,
		ExpenseDate: domain.NormalizeDate(req.ExpenseDate.Time),
		Amount:      req.Amount,
		Status:      status,
		DocumentID:  req.DocumentID,
		Version:     1,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.Repos.ExpenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.String()),
		slog.String("status", string(expense.Status)))
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.Repos.ExpenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, notFound(err)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := portsrepo.ExpenseFilter{Status: params.Status, RecurringProfileID: params.RecurringProfileID}
	expenses, err := s.Repos.ExpenseRepo.ListExpenses(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) ApproveExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error) {
	return s.transition(ctx, expenseID, domain.ExpenseApproved, userID)
}

func (s *expenseService) RejectExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error) {
	return s.transition(ctx, expenseID, domain.ExpenseRejected, userID)
}

// transition moves a pending expense to approved or rejected.
func (s *expenseService) transition(ctx context.Context, expenseID string, to domain.ExpenseStatus, userID string) (*domain.Expense, error) {
	var updated domain.Expense
	err := s.runInTx(ctx, "expense_"+string(to), func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		expense, err := repos.ExpenseRepo.FindExpenseByID(ctx, expenseID)
		if err != nil {
			return notFound(err)
		}
		if expense.Status != domain.ExpensePending {
			return apperrors.New(apperrors.KindInvalidState, "expense %s is %s, only pending expenses can be %s", expenseID, expense.Status, to)
		}
		expected := expense.Version
		updated = *expense
		updated.Status = to
		updated.Version = expected + 1
		updated.Touch(userID, s.now())
		return repos.ExpenseRepo.UpdateExpense(ctx, updated, expected)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change expense status", slog.String("expense_id", expenseID), slog.String("to", string(to)))
		return nil, err
	}
	s.LogInfo(ctx, "Expense status changed", slog.String("expense_id", expenseID), slog.String("status", string(to)))
	return &updated, nil
}

func (s *expenseService) ListExpensePayments(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error) {
	if _, err := s.Repos.ExpenseRepo.FindExpenseByID(ctx, expenseID); err != nil {
		return nil, notFound(err)
	}
	payments, err := s.Repos.ExpenseRepo.ListExpensePaymentsByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense payments: %w", err)
	}
	return payments, nil
}
