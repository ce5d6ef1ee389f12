package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	invoiceColumns = `invoice_id, customer_id, invoice_number, issue_date, due_date, tax_rate, subtotal, tax, total,
	amount_paid, status, notes, version, created_at, created_by, last_updated_at, last_updated_by`
	invoiceLineColumns = `line_id, invoice_id, line_no, description, quantity, unit_price, line_total`
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db dbtx) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository{db: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func queueInvoiceLines(batch *pgx.Batch, lines []domain.InvoiceLine) {
	for _, line := range lines {
		l := mapping.ToModelInvoiceLine(line)
		batch.Queue(`
			INSERT INTO invoice_lines (`+invoiceLineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.LineID, l.InvoiceID, l.LineNo, l.Description, l.Quantity, l.UnitPrice, l.LineTotal,
		)
	}
}

// SaveInvoice inserts the invoice and its lines. A reused invoice number is ErrDuplicate.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.InvoiceID, m.CustomerID, m.InvoiceNumber, m.IssueDate, m.DueDate, m.TaxRate, m.Subtotal, m.Tax, m.Total,
		m.AmountPaid, m.Status, m.Notes, m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	queueInvoiceLines(batch, invoice.Lines)
	_, err := sendBatch(ctx, r.db, batch, "save invoice "+m.InvoiceNumber)
	return err
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	m, err := collectOne[models.Invoice](ctx, r.db,
		`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice", invoiceID)
	}
	inv := mapping.ToDomainInvoice(m)

	lines, err := collectRows[models.InvoiceLine](ctx, r.db,
		`SELECT `+invoiceLineColumns+` FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_no`, invoiceID)
	if err != nil {
		return nil, mapPgError(err, "failed to query lines of invoice %s", invoiceID)
	}
	inv.Lines = mapping.ToDomainInvoiceLineSlice(lines)
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindInvoicesByIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.Invoice, error) {
	if len(invoiceIDs) == 0 {
		return map[string]domain.Invoice{}, nil
	}
	ms, err := collectRows[models.Invoice](ctx, r.db,
		`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = ANY($1)`, invoiceIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query invoices by IDs")
	}
	out := make(map[string]domain.Invoice, len(ms))
	for _, m := range ms {
		out[m.InvoiceID] = mapping.ToDomainInvoice(m)
	}
	return out, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter, limit int, offset int) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE TRUE`
	var args []any
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += ` AND customer_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY issue_date DESC, invoice_number DESC`
	page, args := pageClause(args, limit, offset)

	ms, err := collectRows[models.Invoice](ctx, r.db, query+page, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list invoices")
	}
	return mapping.ToDomainInvoiceSlice(ms), nil
}

// UpdateInvoice writes the header when the stored version matches.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error {
	m := mapping.ToModelInvoice(invoice)
	tag, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET customer_id = $3, invoice_number = $4, issue_date = $5, due_date = $6, tax_rate = $7,
			subtotal = $8, tax = $9, total = $10, amount_paid = $11, status = $12, notes = $13,
			version = $14, last_updated_at = $15, last_updated_by = $16
		WHERE invoice_id = $1 AND version = $2`,
		m.InvoiceID, expectedVersion, m.CustomerID, m.InvoiceNumber, m.IssueDate, m.DueDate, m.TaxRate,
		m.Subtotal, m.Tax, m.Total, m.AmountPaid, m.Status, m.Notes,
		m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update invoice %s", m.InvoiceID)
	}
	if tag.RowsAffected() == 0 {
		return versionConflict(ctx, r.db, "invoices", "invoice_id", "invoice", m.InvoiceID, expectedVersion)
	}
	return nil
}

// ReplaceInvoiceLines deletes the stored lines and inserts the given ones.
func (r *PgxInvoiceRepository) ReplaceInvoiceLines(ctx context.Context, invoiceID string, lines []domain.InvoiceLine) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM invoice_lines WHERE invoice_id = $1`, invoiceID)
	queueInvoiceLines(batch, lines)
	_, err := sendBatch(ctx, r.db, batch, "replace lines of invoice "+invoiceID)
	return err
}
