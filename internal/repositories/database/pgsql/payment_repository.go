package pgsql

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	paymentColumns = `payment_id, customer_id, payment_date, method, amount, reference,
	created_at, created_by, last_updated_at, last_updated_by`
	allocationColumns = `invoice_payment_id, payment_id, invoice_id, amount_applied`
	creditNoteColumns = `credit_note_id, invoice_id, note_date, amount, notes,
	created_at, created_by, last_updated_at, last_updated_by`
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(db dbtx) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository{db: db}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// SavePayment inserts the payment followed by its allocations.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.PaymentID, m.CustomerID, m.PaymentDate, m.Method, m.Amount, m.Reference,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for _, alloc := range payment.Allocations {
		a := mapping.ToModelInvoicePayment(alloc)
		batch.Queue(`
			INSERT INTO invoice_payments (`+allocationColumns+`)
			VALUES ($1, $2, $3, $4)`,
			a.InvoicePaymentID, a.PaymentID, a.InvoiceID, a.AmountApplied,
		)
	}
	_, err := sendBatch(ctx, r.db, batch, "save payment "+m.PaymentID)
	return err
}

// FindPaymentByID retrieves a payment with its allocations.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	m, err := collectOne[models.Payment](ctx, r.db,
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID)
	if err != nil {
		return nil, notFoundOr(err, "payment", paymentID)
	}
	p := mapping.ToDomainPayment(m)

	allocs, err := collectRows[models.InvoicePayment](ctx, r.db,
		`SELECT `+allocationColumns+` FROM invoice_payments WHERE payment_id = $1 ORDER BY invoice_payment_id`, paymentID)
	if err != nil {
		return nil, mapPgError(err, "failed to query allocations of payment %s", paymentID)
	}
	p.Allocations = mapping.ToDomainInvoicePaymentSlice(allocs)
	return &p, nil
}

// DeletePayment removes the payment; allocations go with it via ON DELETE CASCADE.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	return execAffecting(ctx, r.db, "payment", paymentID, `DELETE FROM payments WHERE payment_id = $1`, paymentID)
}

func (r *PgxPaymentRepository) ListAllocationsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoicePayment, error) {
	ms, err := collectRows[models.InvoicePayment](ctx, r.db,
		`SELECT `+allocationColumns+` FROM invoice_payments WHERE invoice_id = $1 ORDER BY invoice_payment_id`, invoiceID)
	if err != nil {
		return nil, mapPgError(err, "failed to list allocations of invoice %s", invoiceID)
	}
	return mapping.ToDomainInvoicePaymentSlice(ms), nil
}

// ListPayments lists payments newest first. Allocations are loaded for the page.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, customerID string, limit int, offset int) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	var args []any
	if customerID != "" {
		args = append(args, customerID)
		query += ` WHERE customer_id = $1`
	}
	query += ` ORDER BY payment_date DESC, created_at DESC, payment_id DESC`
	page, args := pageClause(args, limit, offset)
	ms, err := collectRows[models.Payment](ctx, r.db, query+page, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list payments")
	}
	payments := mapping.ToDomainPaymentSlice(ms)
	if len(payments) == 0 {
		return payments, nil
	}

	ids := make([]string, len(payments))
	for i, p := range payments {
		ids[i] = p.PaymentID
	}
	allocs, err := collectRows[models.InvoicePayment](ctx, r.db,
		`SELECT `+allocationColumns+` FROM invoice_payments WHERE payment_id = ANY($1) ORDER BY invoice_payment_id`, ids)
	if err != nil {
		return nil, mapPgError(err, "failed to query payment allocations")
	}
	byPayment := make(map[string][]domain.InvoicePayment, len(payments))
	for _, a := range allocs {
		byPayment[a.PaymentID] = append(byPayment[a.PaymentID], mapping.ToDomainInvoicePayment(a))
	}
	for i := range payments {
		payments[i].Allocations = byPayment[payments[i].PaymentID]
	}
	return payments, nil
}

type PgxCreditNoteRepository struct {
	BaseRepository
}

func newPgxCreditNoteRepository(db dbtx) *PgxCreditNoteRepository {
	return &PgxCreditNoteRepository{BaseRepository{db: db}}
}

var _ portsrepo.CreditNoteRepositoryFacade = (*PgxCreditNoteRepository)(nil)

func (r *PgxCreditNoteRepository) SaveCreditNote(ctx context.Context, note domain.CreditNote) error {
	m := mapping.ToModelCreditNote(note)
	_, err := r.db.Exec(ctx, `
		INSERT INTO credit_notes (`+creditNoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.CreditNoteID, m.InvoiceID, m.NoteDate, m.Amount, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save credit note %s", m.CreditNoteID)
}

func (r *PgxCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	m, err := collectOne[models.CreditNote](ctx, r.db,
		`SELECT `+creditNoteColumns+` FROM credit_notes WHERE credit_note_id = $1`, creditNoteID)
	if err != nil {
		return nil, notFoundOr(err, "credit note", creditNoteID)
	}
	note := mapping.ToDomainCreditNote(m)
	return &note, nil
}

func (r *PgxCreditNoteRepository) DeleteCreditNote(ctx context.Context, creditNoteID string) error {
	return execAffecting(ctx, r.db, "credit note", creditNoteID, `DELETE FROM credit_notes WHERE credit_note_id = $1`, creditNoteID)
}

func (r *PgxCreditNoteRepository) ListCreditNotesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.CreditNote, error) {
	ms, err := collectRows[models.CreditNote](ctx, r.db,
		`SELECT `+creditNoteColumns+` FROM credit_notes WHERE invoice_id = $1 ORDER BY note_date, credit_note_id`, invoiceID)
	if err != nil {
		return nil, mapPgError(err, "failed to list credit notes of invoice %s", invoiceID)
	}
	return mapping.ToDomainCreditNoteSlice(ms), nil
}
