package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const (
	journalColumns = `journal_id, journal_date, description, status, amount, original_journal_id, reversing_journal_id,
	created_at, created_by, last_updated_at, last_updated_by`
	journalLineColumns = `line_id, journal_id, line_no, account_id, side, amount, notes, running_balance, created_at`
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(db dbtx) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository{db: db}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal inserts the journal header and queues one insert per line.
// Lines are inserted in line order, which fixes their posting sequence.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	j := mapping.ToModelJournal(journal)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journals (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.JournalID, j.JournalDate, j.Description, j.Status, j.Amount, j.OriginalJournalID, j.ReversingJournalID,
		j.CreatedAt, j.CreatedBy, j.LastUpdatedAt, j.LastUpdatedBy,
	)
	for _, line := range journal.Lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(`
			INSERT INTO journal_lines (`+journalLineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.LineID, l.JournalID, l.LineNo, l.AccountID, l.Side, l.Amount, l.Notes, l.RunningBalance, l.CreatedAt,
		)
	}
	_, err := sendBatch(ctx, r.db, batch, "save journal "+j.JournalID)
	return err
}

// FindJournalByID retrieves a journal and its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	m, err := collectOne[models.Journal](ctx, r.db,
		`SELECT `+journalColumns+` FROM journals WHERE journal_id = $1`, journalID)
	if err != nil {
		return nil, notFoundOr(err, "journal", journalID)
	}
	journal := mapping.ToDomainJournal(m)

	lines, err := r.linesByJournalIDs(ctx, []string{journalID})
	if err != nil {
		return nil, err
	}
	journal.Lines = lines[journalID]
	return &journal, nil
}

func (r *PgxJournalRepository) linesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	ms, err := collectRows[models.JournalLine](ctx, r.db, `
		SELECT `+journalLineColumns+` FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, line_no`, journalIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query journal lines")
	}
	out := make(map[string][]domain.JournalLine, len(journalIDs))
	for _, m := range ms {
		out[m.JournalID] = append(out[m.JournalID], mapping.ToDomainJournalLine(m))
	}
	return out, nil
}

// ListJournals pages journals newest first using an opaque keyset cursor.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	query := `SELECT ` + journalColumns + ` FROM journals`
	var args []any
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (journal_date, created_at, journal_id) < ($1, $2, $3)`
		args = append(args, c.Date, c.CreatedAt, c.ID)
	}
	query += ` ORDER BY journal_date DESC, created_at DESC, journal_id DESC`
	fetch := 0
	if limit > 0 {
		fetch = limit + 1
	}
	page, args := pageClause(args, fetch, 0)

	ms, err := collectRows[models.Journal](ctx, r.db, query+page, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to list journals")
	}

	var next *string
	if limit > 0 && len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeCursor(pagination.Cursor{Date: last.JournalDate, CreatedAt: last.CreatedAt, ID: last.JournalID})
		next = &token
	}

	journals := mapping.ToDomainJournalSlice(ms)
	if len(journals) == 0 {
		return journals, nil, nil
	}
	ids := make([]string, len(journals))
	for i, j := range journals {
		ids[i] = j.JournalID
	}
	lines, err := r.linesByJournalIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range journals {
		journals[i].Lines = lines[journals[i].JournalID]
	}
	return journals, next, nil
}

// UpdateJournalStatusAndLinks updates the status and, when given, the reversal links.
func (r *PgxJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	return execAffecting(ctx, r.db, "journal", journalID, `
		UPDATE journals
		SET status = $2,
			reversing_journal_id = COALESCE($3, reversing_journal_id),
			original_journal_id = COALESCE($4, original_journal_id),
			last_updated_at = $5,
			last_updated_by = $6
		WHERE journal_id = $1`,
		journalID, string(status), reversingJournalID, originalJournalID, updatedAt, updatedByUserID,
	)
}

// ListLinesByAccountID returns every line for the account in posting order.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string) ([]domain.JournalLine, error) {
	ms, err := collectRows[models.JournalLine](ctx, r.db, `
		SELECT `+journalLineColumns+` FROM journal_lines
		WHERE account_id = $1
		ORDER BY posting_seq`, accountID)
	if err != nil {
		return nil, mapPgError(err, "failed to list lines of account %s", accountID)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}

func (r *PgxJournalRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "failed to check postings of account %s", accountID)
	}
	return exists, nil
}
