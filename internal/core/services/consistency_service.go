package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"go.uber.org/multierr"
)

// consistencyService re-derives every materialized value from history and
// reports the ones that disagree. It never writes.
type consistencyService struct {
	BaseService
}

// NewConsistencyService creates a new consistency checker.
func NewConsistencyService(base BaseService) portssvc.ConsistencySvc {
	return &consistencyService{BaseService: base}
}

var _ portssvc.ConsistencySvc = (*consistencyService)(nil)

func (s *consistencyService) Check(ctx context.Context) (*domain.ConsistencyReport, error) {
	var report *domain.ConsistencyReport
	err := s.runInTx(ctx, "consistency_check", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		report = &domain.ConsistencyReport{CheckedAt: s.now(), Mismatches: []domain.Mismatch{}}
		checks := []func(context.Context, portsrepo.RepositoryProvider, *domain.ConsistencyReport) error{
			checkAccounts, checkBankAccounts, checkInvoices, checkExpenses,
		}
		for _, check := range checks {
			if err := check(ctx, repos, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Consistency check could not run")
		return nil, err
	}

	var violations error
	for _, m := range report.Mismatches {
		violations = multierr.Append(violations, apperrors.New(apperrors.KindIntegrityViolation,
			"%s %s %s is %s but recomputes to %s", m.Entity, m.EntityID, m.Field, m.Materialized, m.Recomputed))
	}
	if violations != nil {
		s.LogError(ctx, violations, "Consistency check found mismatches", slog.Int("count", len(report.Mismatches)))
	} else {
		s.LogInfo(ctx, "Consistency check passed",
			slog.Int("accounts", report.AccountsChecked),
			slog.Int("bank_accounts", report.BankAccountsChecked),
			slog.Int("invoices", report.InvoicesChecked),
			slog.Int("expenses", report.ExpensesChecked))
	}
	return report, violations
}

func checkAccounts(ctx context.Context, repos portsrepo.RepositoryProvider, report *domain.ConsistencyReport) error {
	accounts, err := repos.AccountRepo.ListAccounts(ctx, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, acc := range accounts {
		lines, err := repos.JournalRepo.ListLinesByAccountID(ctx, acc.AccountID)
		if err != nil {
			return fmt.Errorf("failed to list postings for account %s: %w", acc.AccountID, err)
		}
		recomputed, err := accounting.RecomputeBalance(acc.AccountType, lines)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "account %s", acc.AccountID)
		}
		report.AccountsChecked++
		if recomputed != acc.Balance {
			report.Mismatches = append(report.Mismatches, domain.Mismatch{
				Entity: "account", EntityID: acc.AccountID, Field: "balance", Materialized: acc.Balance, Recomputed: recomputed,
			})
		}
		// the last running balance must agree with the recompute as well
		if n := len(lines); n > 0 && lines[n-1].RunningBalance != recomputed {
			report.Mismatches = append(report.Mismatches, domain.Mismatch{
				Entity: "account", EntityID: acc.AccountID, Field: "running_balance", Materialized: lines[n-1].RunningBalance, Recomputed: recomputed,
			})
		}
	}
	return nil
}

func checkBankAccounts(ctx context.Context, repos portsrepo.RepositoryProvider, report *domain.ConsistencyReport) error {
	accounts, err := repos.BankRepo.ListBankAccounts(ctx, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to list bank accounts: %w", err)
	}
	for _, acc := range accounts {
		txns, err := repos.BankRepo.ListBankTransactionsByAccountID(ctx, acc.BankAccountID)
		if err != nil {
			return fmt.Errorf("failed to list transactions for bank account %s: %w", acc.BankAccountID, err)
		}
		recomputed, err := accounting.RecomputeBankBalance(txns)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "bank account %s", acc.BankAccountID)
		}
		report.BankAccountsChecked++
		if recomputed != acc.CurrentBalance {
			report.Mismatches = append(report.Mismatches, domain.Mismatch{
				Entity: "bank_account", EntityID: acc.BankAccountID, Field: "current_balance", Materialized: acc.CurrentBalance, Recomputed: recomputed,
			})
		}
	}
	return nil
}

func checkInvoices(ctx context.Context, repos portsrepo.RepositoryProvider, report *domain.ConsistencyReport) error {
	invoices, err := repos.InvoiceRepo.ListInvoices(ctx, portsrepo.InvoiceFilter{}, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}
	for _, inv := range invoices {
		allocations, err := repos.PaymentRepo.ListAllocationsByInvoiceID(ctx, inv.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to list allocations for invoice %s: %w", inv.InvoiceID, err)
		}
		notes, err := repos.CreditNoteRepo.ListCreditNotesByInvoiceID(ctx, inv.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to list credit notes for invoice %s: %w", inv.InvoiceID, err)
		}
		recomputed := accounting.RecomputeInvoicePaid(allocations, notes)
		report.InvoicesChecked++
		if recomputed != inv.AmountPaid {
			report.Mismatches = append(report.Mismatches, domain.Mismatch{
				Entity: "invoice", EntityID: inv.InvoiceID, Field: "amount_paid", Materialized: inv.AmountPaid, Recomputed: recomputed,
			})
		}
	}
	return nil
}

func checkExpenses(ctx context.Context, repos portsrepo.RepositoryProvider, report *domain.ConsistencyReport) error {
	expenses, err := repos.ExpenseRepo.ListExpenses(ctx, portsrepo.ExpenseFilter{}, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}
	for _, e := range expenses {
		payments, err := repos.ExpenseRepo.ListExpensePaymentsByExpenseID(ctx, e.ExpenseID)
		if err != nil {
			return fmt.Errorf("failed to list payments for expense %s: %w", e.ExpenseID, err)
		}
		recomputed := accounting.RecomputeExpensePaid(payments)
		report.ExpensesChecked++
		if recomputed != e.AmountPaid {
			report.Mismatches = append(report.Mismatches, domain.Mismatch{
				Entity: "expense", EntityID: e.ExpenseID, Field: "amount_paid", Materialized: e.AmountPaid, Recomputed: recomputed,
			})
		}
	}
	return nil
}
