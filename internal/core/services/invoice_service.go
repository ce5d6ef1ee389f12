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
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// invoiceService manages invoice documents. amount_paid is owned by the applier.
type invoiceService struct {
	BaseService
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(base BaseService) portssvc.InvoiceSvcFacade {
	return &invoiceService{BaseService: base}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// priceLines computes line totals, subtotal, tax and total. Each line is
// rounded on its own; tax is rounded once on the subtotal.
func priceLines(invoiceID string, taxRate decimal.Decimal, reqLines []dto.InvoiceLineRequest) (priced, error) {
	out := priced{lines: make([]domain.InvoiceLine, len(reqLines))}
	for i, l := range reqLines {
		lineTotal, err := l.UnitPrice.MulQuantity(l.Quantity)
		if err != nil {
			return priced{}, apperrors.NewLineError(apperrors.KindInvalidLine, i, "line total is out of range")
		}
		out.lines[i] = domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			LineNo:      i + 1,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   lineTotal,
		}
		var ok bool
		if out.subtotal, ok = out.subtotal.CheckedAdd(lineTotal); !ok {
			return priced{}, apperrors.NewLineError(apperrors.KindInvalidLine, i, "invoice subtotal overflows")
		}
	}
	tax, err := domain.MoneyFromDecimal(out.subtotal.Decimal().Mul(taxRate).Div(hundred))
	if err != nil {
		return priced{}, apperrors.NewFieldError(apperrors.KindInvalidLine, "taxRate", "tax amount is out of range")
	}
	total, ok := out.subtotal.CheckedAdd(tax)
	if !ok {
		return priced{}, apperrors.NewFieldError(apperrors.KindInvalidLine, "lines", "invoice total overflows")
	}
	out.tax, out.total = tax, total
	return out, nil
}

type priced struct {
	lines                []domain.InvoiceLine
	subtotal, tax, total domain.Money
}

func (p priced) applyTo(inv *domain.Invoice) {
	inv.Lines, inv.Subtotal, inv.Tax, inv.Total = p.lines, p.subtotal, p.tax, p.total
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if req.DueDate.Before(req.IssueDate.Time) {
		return nil, apperrors.NewFieldError(apperrors.KindInvalidLine, "dueDate", "due date is before the issue date")
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		IssueDate:     domain.NormalizeDate(req.IssueDate.Time),
		DueDate:       domain.NormalizeDate(req.DueDate.Time),
		TaxRate:       req.TaxRate,
		Status:        domain.InvoiceDraft,
		Notes:         req.Notes,
		Version:       1,
		AuditFields:   domain.NewAuditFields(userID, s.now()),
	}
	pricing, err := priceLines(invoice.InvoiceID, req.TaxRate, req.Lines)
	if err != nil {
		return nil, err
	}
	pricing.applyTo(&invoice)

	if err := s.Repos.InvoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", req.InvoiceNumber))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("total", invoice.Total.String()))
	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.Repos.InvoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, notFound(err)
	}
	invoice.Status = accounting.EffectiveInvoiceStatus(invoice.Status, invoice.DueDate, s.now())
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	filter := portsrepo.InvoiceFilter{CustomerID: params.CustomerID, Status: params.Status}
	invoices, err := s.Repos.InvoiceRepo.ListInvoices(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	today := s.now()
	for i := range invoices {
		invoices[i].Status = accounting.EffectiveInvoiceStatus(invoices[i].Status, invoices[i].DueDate, today)
	}
	return invoices, nil
}

// updateInvoice loads the invoice, lets mutate change it and writes it back under the version check.
func (s *invoiceService) updateInvoice(ctx context.Context, op, invoiceID, userID string, mutate func(ctx context.Context, repos portsrepo.RepositoryProvider, inv *domain.Invoice) error) (*domain.Invoice, error) {
	var updated domain.Invoice
	err := s.runInTx(ctx, op, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		inv, err := repos.InvoiceRepo.FindInvoiceByID(ctx, invoiceID)
		if err != nil {
			return notFound(err)
		}
		expected := inv.Version
		if err := mutate(ctx, repos, inv); err != nil {
			return err
		}
		inv.Version = expected + 1
		inv.Touch(userID, s.now())
		if err := repos.InvoiceRepo.UpdateInvoice(ctx, *inv, expected); err != nil {
			return err
		}
		updated = *inv
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("operation", op), slog.String("invoice_id", invoiceID))
		return nil, err
	}
	updated.Status = accounting.EffectiveInvoiceStatus(updated.Status, updated.DueDate, s.now())
	s.LogInfo(ctx, "Invoice updated", slog.String("operation", op), slog.String("invoice_id", invoiceID))
	return &updated, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	return s.updateInvoice(ctx, "send_invoice", invoiceID, userID, func(_ context.Context, _ portsrepo.RepositoryProvider, inv *domain.Invoice) error {
		if inv.Status != domain.InvoiceDraft {
			return apperrors.New(apperrors.KindInvalidState, "invoice %s is %s, only drafts can be sent", inv.InvoiceID, inv.Status)
		}
		inv.Status = domain.InvoiceSent
		return nil
	})
}

func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	return s.updateInvoice(ctx, "cancel_invoice", invoiceID, userID, func(_ context.Context, _ portsrepo.RepositoryProvider, inv *domain.Invoice) error {
		if inv.Status == domain.InvoiceCancelled {
			return apperrors.New(apperrors.KindInvalidState, "invoice %s is already cancelled", inv.InvoiceID)
		}
		if inv.AmountPaid != 0 {
			return apperrors.New(apperrors.KindInvalidState, "invoice %s has %s applied; void the payments first", inv.InvoiceID, inv.AmountPaid)
		}
		inv.Status = domain.InvoiceCancelled
		return nil
	})
}

func (s *invoiceService) ReviseInvoiceLines(ctx context.Context, invoiceID string, req dto.ReviseInvoiceLinesRequest, userID string) (*domain.Invoice, error) {
	return s.updateInvoice(ctx, "revise_invoice", invoiceID, userID, func(ctx context.Context, repos portsrepo.RepositoryProvider, inv *domain.Invoice) error {
		if inv.Status == domain.InvoiceCancelled {
			return apperrors.New(apperrors.KindInvalidState, "invoice %s is cancelled", inv.InvoiceID)
		}
		if inv.AmountPaid != 0 {
			return apperrors.New(apperrors.KindInvalidState, "invoice %s has money applied and can no longer be revised", inv.InvoiceID)
		}
		pricing, err := priceLines(inv.InvoiceID, req.TaxRate, req.Lines)
		if err != nil {
			return err
		}
		inv.TaxRate = req.TaxRate
		pricing.applyTo(inv)
		return repos.InvoiceRepo.ReplaceInvoiceLines(ctx, inv.InvoiceID, inv.Lines)
	})
}

func (s *invoiceService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.Repos.PaymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, notFound(err)
	}
	return payment, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error) {
	payments, err := s.Repos.PaymentRepo.ListPayments(ctx, params.CustomerID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *invoiceService) GetCreditNote(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	note, err := s.Repos.CreditNoteRepo.FindCreditNoteByID(ctx, creditNoteID)
	if err != nil {
		return nil, notFound(err)
	}
	return note, nil
}

func (s *invoiceService) ListCreditNotes(ctx context.Context, invoiceID string) ([]domain.CreditNote, error) {
	if _, err := s.Repos.InvoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, notFound(err)
	}
	notes, err := s.Repos.CreditNoteRepo.ListCreditNotesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit notes: %w", err)
	}
	return notes, nil
}
