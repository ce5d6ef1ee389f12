package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

func (s *transactionApplier) ApplyExpensePayment(ctx context.Context, req dto.ApplyExpensePaymentRequest, userID string) (*domain.ExpensePaymentResult, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewFieldError(apperrors.KindZeroAmount, "amount", "payment amount must be greater than zero")
	}

	var result *domain.ExpensePaymentResult
	err := s.runInTx(ctx, "apply_expense_payment", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		expense, err := repos.ExpenseRepo.FindExpenseByID(ctx, req.ExpenseID)
		if err != nil {
			return notFound(err)
		}
		if !expense.Status.AcceptsPayments() {
			return apperrors.New(apperrors.KindInvalidState, "expense %s is %s and cannot take payments", expense.ExpenseID, expense.Status)
		}
		if req.Amount > expense.BalanceDue() {
			return apperrors.NewFieldError(apperrors.KindOverApplied, "amount",
				"payment %s exceeds balance due %s on expense %s", req.Amount, expense.BalanceDue(), expense.ExpenseID)
		}

		now := s.now()
		payment := domain.ExpensePayment{
			ExpensePaymentID: uuid.NewString(),
			ExpenseID:        expense.ExpenseID,
			PaymentDate:      domain.NormalizeDate(req.PaymentDate.Time),
			Method:           req.Method,
			Amount:           req.Amount,
			Reference:        req.Reference,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
		if err := repos.ExpenseRepo.SaveExpensePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save expense payment: %w", err)
		}
		updated, err := adjustExpensePaid(ctx, repos, *expense, payment.Amount, userID, now)
		if err != nil {
			return err
		}
		result = &domain.ExpensePaymentResult{Payment: payment, Expense: domain.NewExpenseBalance(updated)}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to apply expense payment", slog.String("expense_id", req.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense payment applied",
		slog.String("expense_payment_id", result.Payment.ExpensePaymentID),
		slog.String("amount", req.Amount.String()))
	return result, nil
}

func (s *transactionApplier) VoidExpensePayment(ctx context.Context, expensePaymentID string, userID string) (*domain.ExpensePaymentResult, error) {
	var result *domain.ExpensePaymentResult
	err := s.runInTx(ctx, "void_expense_payment", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		payment, err := repos.ExpenseRepo.FindExpensePaymentByID(ctx, expensePaymentID)
		if err != nil {
			return notFound(err)
		}
		expense, err := repos.ExpenseRepo.FindExpenseByID(ctx, payment.ExpenseID)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "expense payment %s references a missing expense", expensePaymentID)
		}
		updated, err := adjustExpensePaid(ctx, repos, *expense, payment.Amount.Neg(), userID, s.now())
		if err != nil {
			return err
		}
		if err := repos.ExpenseRepo.DeleteExpensePayment(ctx, expensePaymentID); err != nil {
			return fmt.Errorf("failed to delete expense payment: %w", err)
		}
		result = &domain.ExpensePaymentResult{Payment: *payment, Expense: domain.NewExpenseBalance(updated)}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to void expense payment", slog.String("expense_payment_id", expensePaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense payment voided", slog.String("expense_payment_id", expensePaymentID))
	return result, nil
}

// adjustExpensePaid is the expense counterpart of adjustInvoicePaid.
func adjustExpensePaid(ctx context.Context, repos portsrepo.RepositoryProvider, expense domain.Expense, delta domain.Money, userID string, now time.Time) (domain.Expense, error) {
	expected := expense.Version
	expense.AmountPaid += delta
	if expense.AmountPaid < 0 || expense.AmountPaid > expense.Amount {
		return domain.Expense{}, apperrors.New(apperrors.KindIntegrityViolation,
			"expense %s amount paid %s would leave the range 0..%s", expense.ExpenseID, expense.AmountPaid, expense.Amount)
	}
	expense.Status = accounting.ReconcileExpenseStatus(expense.Status, expense.Amount, expense.AmountPaid)
	expense.Version = expected + 1
	expense.Touch(userID, now)
	if err := repos.ExpenseRepo.UpdateExpense(ctx, expense, expected); err != nil {
		return domain.Expense{}, fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	return expense, nil
}

// GenerateRecurringExpenses runs every active profile in parallel, bounded by the worker limit.
func (s *transactionApplier) GenerateRecurringExpenses(ctx context.Context, asOf time.Time, userID string) ([]domain.RecurringRunResult, error) {
	profiles, err := s.Repos.RecurringRepo.ListProfiles(ctx, domain.RecurringActive, 0, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring profiles")
		return nil, fmt.Errorf("failed to list recurring profiles: %w", err)
	}

	runs := make([]*domain.RecurringRunResult, len(profiles))
	errs := make([]error, len(profiles))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, p := range profiles {
		g.Go(func() error {
			run, err := s.GenerateRecurringExpensesForProfile(ctx, p.ProfileID, asOf, userID)
			if err != nil {
				errs[i] = fmt.Errorf("profile %s: %w", p.ProfileID, err)
				return nil
			}
			runs[i] = run
			return nil
		})
	}
	_ = g.Wait()

	results := make([]domain.RecurringRunResult, 0, len(profiles))
	generated := 0
	for _, run := range runs {
		if run != nil {
			results = append(results, *run)
			generated += len(run.Generated)
		}
	}
	combined := multierr.Combine(errs...)

	s.LogInfo(ctx, "Recurring expense run finished",
		slog.Time("as_of", asOf),
		slog.Int("profiles", len(profiles)),
		slog.Int("generated", generated),
		slog.Int("failed", len(multierr.Errors(combined))))
	return results, combined
}

// GenerateRecurringExpensesForProfile creates one expense per due period up to asOf,
// advances last_generated_date and finishes the profile once its schedule is exhausted.
// Profiles that are not active generate nothing.
func (s *transactionApplier) GenerateRecurringExpensesForProfile(ctx context.Context, profileID string, asOf time.Time, userID string) (*domain.RecurringRunResult, error) {
	var result *domain.RecurringRunResult
	err := s.runInTx(ctx, "generate_recurring", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		profile, err := repos.RecurringRepo.FindProfileByID(ctx, profileID)
		if err != nil {
			return notFound(err)
		}
		run := &domain.RecurringRunResult{ProfileID: profile.ProfileID, Status: profile.Status, LastGeneratedDate: profile.LastGeneratedDate}
		if profile.Status != domain.RecurringActive {
			result = run
			return nil
		}

		dueDates, err := accounting.DueDates(*profile, asOf, s.maxCatchUp)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "profile %s", profileID)
		}

		now := s.now()
		updated := *profile
		for _, due := range dueDates {
			dueDate := due
			profileRef := profile.ProfileID
			expense := domain.Expense{
				ExpenseID:          uuid.NewString(),
				CategoryID:         profile.CategoryID,
				VendorID:           profile.VendorID,
				Description:        profile.Description,
				ExpenseDate:        dueDate,
				Amount:             profile.Amount,
				Status:             domain.ExpenseApproved,
				RecurringProfileID: &profileRef,
				RecurringDueDate:   &dueDate,
				Version:            1,
				AuditFields:        domain.NewAuditFields(userID, now),
			}
			if err := repos.ExpenseRepo.SaveExpense(ctx, expense); err != nil {
				return fmt.Errorf("failed to save recurring expense for %s: %w", dueDate.Format(time.DateOnly), err)
			}
			run.Generated = append(run.Generated, expense)
			updated.LastGeneratedDate = &dueDate
		}

		exhausted, err := accounting.ScheduleExhausted(updated)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "profile %s", profileID)
		}
		if exhausted {
			updated.Status = domain.RecurringFinished
		}

		if len(run.Generated) > 0 || exhausted {
			updated.Version = profile.Version + 1
			updated.Touch(userID, now)
			if err := repos.RecurringRepo.UpdateProfile(ctx, updated, profile.Version); err != nil {
				return fmt.Errorf("failed to update recurring profile: %w", err)
			}
		}
		run.Status = updated.Status
		run.LastGeneratedDate = updated.LastGeneratedDate
		result = run
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate recurring expenses", slog.String("profile_id", profileID))
		return nil, err
	}

	if len(result.Generated) > 0 {
		s.LogInfo(ctx, "Recurring expenses generated",
			slog.String("profile_id", profileID),
			slog.Int("count", len(result.Generated)),
			slog.String("status", string(result.Status)))
	}
	return result, nil
}
