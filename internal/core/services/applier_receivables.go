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
)

func (s *transactionApplier) ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentResult, error) {
	var result *domain.PaymentResult
	err := s.runInTx(ctx, "apply_payment", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		invoices, err := s.checkAllocations(ctx, repos, req)
		if err != nil {
			return err
		}

		now := s.now()
		payment := domain.Payment{
			PaymentID:   uuid.NewString(),
			CustomerID:  req.CustomerID,
			PaymentDate: domain.NormalizeDate(req.PaymentDate.Time),
			Method:      req.Method,
			Reference:   req.Reference,
			Allocations: make([]domain.InvoicePayment, len(req.Allocations)),
			AuditFields: domain.NewAuditFields(userID, now),
		}
		for i, a := range req.Allocations {
			payment.Allocations[i] = domain.InvoicePayment{
				InvoicePaymentID: uuid.NewString(),
				PaymentID:        payment.PaymentID,
				InvoiceID:        a.InvoiceID,
				AmountApplied:    a.Amount,
			}
			payment.Amount += a.Amount
		}
		if err := repos.PaymentRepo.SavePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		balances := make([]domain.InvoiceBalance, 0, len(payment.Allocations))
		for _, a := range payment.Allocations {
			inv, err := adjustInvoicePaid(ctx, repos, invoices[a.InvoiceID], a.AmountApplied, userID, now)
			if err != nil {
				return err
			}
			balances = append(balances, domain.NewInvoiceBalance(inv))
		}
		result = &domain.PaymentResult{Payment: payment, Invoices: balances}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to apply payment", slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment applied",
		slog.String("payment_id", result.Payment.PaymentID),
		slog.String("amount", result.Payment.Amount.String()),
		slog.Int("allocation_count", len(result.Payment.Allocations)))
	return result, nil
}

// checkAllocations validates a payment's allocations against the current invoices and
// returns those invoices keyed by id.
func (s *transactionApplier) checkAllocations(ctx context.Context, repos portsrepo.RepositoryProvider, req dto.ApplyPaymentRequest) (map[string]domain.Invoice, error) {
	if len(req.Allocations) == 0 {
		return nil, apperrors.NewFieldError(apperrors.KindZeroAmount, "allocations", "payment amount must be greater than zero")
	}

	var total domain.Money
	ids := make([]string, 0, len(req.Allocations))
	seen := make(map[string]bool, len(req.Allocations))
	for i, a := range req.Allocations {
		if a.Amount <= 0 {
			return nil, apperrors.NewLineError(apperrors.KindOverApplied, i, "allocated amount %s must be greater than zero", a.Amount)
		}
		if seen[a.InvoiceID] {
			return nil, apperrors.NewLineError(apperrors.KindInvalidLine, i, "invoice %s is allocated more than once", a.InvoiceID)
		}
		var ok bool
		if total, ok = total.CheckedAdd(a.Amount); !ok {
			return nil, apperrors.NewLineError(apperrors.KindOverApplied, i, "payment total overflows")
		}
		seen[a.InvoiceID] = true
		ids = append(ids, a.InvoiceID)
	}

	invoices, err := repos.InvoiceRepo.FindInvoicesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	for i, a := range req.Allocations {
		inv, ok := invoices[a.InvoiceID]
		if !ok {
			return nil, apperrors.NewLineError(apperrors.KindNotFound, i, "invoice %s does not exist", a.InvoiceID)
		}
		if inv.CustomerID != req.CustomerID {
			return nil, apperrors.NewLineError(apperrors.KindInvalidLine, i, "invoice %s belongs to another customer", a.InvoiceID)
		}
		if !inv.Status.AcceptsPayments() {
			return nil, apperrors.NewLineError(apperrors.KindInvalidState, i, "invoice %s is %s and cannot take payments", a.InvoiceID, inv.Status)
		}
		if a.Amount > inv.BalanceDue() {
			return nil, apperrors.NewLineError(apperrors.KindOverApplied, i,
				"allocated amount %s exceeds balance due %s on invoice %s", a.Amount, inv.BalanceDue(), a.InvoiceID)
		}
	}
	return invoices, nil
}

func (s *transactionApplier) VoidPayment(ctx context.Context, paymentID string, userID string) (*domain.PaymentResult, error) {
	var result *domain.PaymentResult
	err := s.runInTx(ctx, "void_payment", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		payment, err := repos.PaymentRepo.FindPaymentByID(ctx, paymentID)
		if err != nil {
			return notFound(err)
		}

		now := s.now()
		balances := make([]domain.InvoiceBalance, 0, len(payment.Allocations))
		for _, a := range payment.Allocations {
			inv, err := repos.InvoiceRepo.FindInvoiceByID(ctx, a.InvoiceID)
			if err != nil {
				return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "payment %s allocates to a missing invoice", paymentID)
			}
			updated, err := adjustInvoicePaid(ctx, repos, *inv, a.AmountApplied.Neg(), userID, now)
			if err != nil {
				return err
			}
			balances = append(balances, domain.NewInvoiceBalance(updated))
		}
		if err := repos.PaymentRepo.DeletePayment(ctx, paymentID); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		result = &domain.PaymentResult{Payment: *payment, Invoices: balances}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to void payment", slog.String("payment_id", paymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment voided",
		slog.String("payment_id", paymentID),
		slog.String("amount", result.Payment.Amount.String()))
	return result, nil
}

func (s *transactionApplier) ApplyCreditNote(ctx context.Context, req dto.ApplyCreditNoteRequest, userID string) (*domain.CreditNoteResult, error) {
	var result *domain.CreditNoteResult
	err := s.runInTx(ctx, "apply_credit_note", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		inv, err := repos.InvoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
		if err != nil {
			return notFound(err)
		}
		if !inv.Status.AcceptsPayments() {
			return apperrors.New(apperrors.KindInvalidState, "invoice %s is %s and cannot be credited", inv.InvoiceID, inv.Status)
		}
		if req.Amount <= 0 || req.Amount > inv.BalanceDue() {
			return apperrors.NewFieldError(apperrors.KindOverApplied, "amount",
				"credit note amount %s must be greater than zero and at most the balance due %s", req.Amount, inv.BalanceDue())
		}

		now := s.now()
		note := domain.CreditNote{
			CreditNoteID: uuid.NewString(),
			InvoiceID:    inv.InvoiceID,
			NoteDate:     domain.NormalizeDate(req.NoteDate.Time),
			Amount:       req.Amount,
			Notes:        req.Notes,
			AuditFields:  domain.NewAuditFields(userID, now),
		}
		if err := repos.CreditNoteRepo.SaveCreditNote(ctx, note); err != nil {
			return fmt.Errorf("failed to save credit note: %w", err)
		}
		updated, err := adjustInvoicePaid(ctx, repos, *inv, note.Amount, userID, now)
		if err != nil {
			return err
		}
		result = &domain.CreditNoteResult{CreditNote: note, Invoice: domain.NewInvoiceBalance(updated)}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to apply credit note", slog.String("invoice_id", req.InvoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit note applied",
		slog.String("credit_note_id", result.CreditNote.CreditNoteID),
		slog.String("invoice_id", req.InvoiceID),
		slog.String("amount", req.Amount.String()))
	return result, nil
}

func (s *transactionApplier) VoidCreditNote(ctx context.Context, creditNoteID string, userID string) (*domain.CreditNoteResult, error) {
	var result *domain.CreditNoteResult
	err := s.runInTx(ctx, "void_credit_note", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		note, err := repos.CreditNoteRepo.FindCreditNoteByID(ctx, creditNoteID)
		if err != nil {
			return notFound(err)
		}
		inv, err := repos.InvoiceRepo.FindInvoiceByID(ctx, note.InvoiceID)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "credit note %s references a missing invoice", creditNoteID)
		}
		updated, err := adjustInvoicePaid(ctx, repos, *inv, note.Amount.Neg(), userID, s.now())
		if err != nil {
			return err
		}
		if err := repos.CreditNoteRepo.DeleteCreditNote(ctx, creditNoteID); err != nil {
			return fmt.Errorf("failed to delete credit note: %w", err)
		}
		result = &domain.CreditNoteResult{CreditNote: *note, Invoice: domain.NewInvoiceBalance(updated)}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to void credit note", slog.String("credit_note_id", creditNoteID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit note voided", slog.String("credit_note_id", creditNoteID))
	return result, nil
}

// adjustInvoicePaid adds delta to amount_paid, reconciles the status and writes
// the invoice under its version check.
func adjustInvoicePaid(ctx context.Context, repos portsrepo.RepositoryProvider, inv domain.Invoice, delta domain.Money, userID string, now time.Time) (domain.Invoice, error) {
	expected := inv.Version
	inv.AmountPaid += delta
	if inv.AmountPaid < 0 || inv.AmountPaid > inv.Total {
		return domain.Invoice{}, apperrors.New(apperrors.KindIntegrityViolation,
			"invoice %s amount paid %s would leave the range 0..%s", inv.InvoiceID, inv.AmountPaid, inv.Total)
	}
	inv.Status = accounting.ReconcileInvoiceStatus(inv.Status, inv.Total, inv.AmountPaid)
	inv.Version = expected + 1
	inv.Touch(userID, now)
	if err := repos.InvoiceRepo.UpdateInvoice(ctx, inv, expected); err != nil {
		return domain.Invoice{}, fmt.Errorf("failed to update invoice %s: %w", inv.InvoiceID, err)
	}
	return inv, nil
}
