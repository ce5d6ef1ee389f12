package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/pagination"
)

func cloneJournal(j domain.Journal) domain.Journal {
	j.Lines = slices.Clone(j.Lines)
	return j
}

func (r *repo) SaveJournal(_ context.Context, journal domain.Journal) error {
	return r.write(func(st *state) error {
		if _, exists := st.journals[journal.JournalID]; exists {
			return fmt.Errorf("journal %s: %w", journal.JournalID, apperrors.ErrDuplicate)
		}
		for _, l := range journal.Lines {
			if _, ok := st.accounts[l.AccountID]; !ok {
				return fmt.Errorf("journal line references account %s: %w", l.AccountID, apperrors.ErrValidation)
			}
		}
		st.journals[journal.JournalID] = cloneJournal(journal)
		st.postingOrder = append(st.postingOrder, journal.JournalID)
		return nil
	})
}

func (r *repo) FindJournalByID(_ context.Context, journalID string) (*domain.Journal, error) {
	var out *domain.Journal
	err := r.read(func(st *state) error {
		j, ok := st.journals[journalID]
		if !ok {
			return fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
		}
		j = cloneJournal(j)
		out = &j
		return nil
	})
	return out, err
}

func (r *repo) ListJournals(_ context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	var out []domain.Journal
	var next *string
	_ = r.read(func(st *state) error {
		all := make([]domain.Journal, 0, len(st.journals))
		for _, j := range st.journals {
			if cursor != nil && !cursor.After(j.JournalDate, j.CreatedAt, j.JournalID) {
				continue
			}
			all = append(all, cloneJournal(j))
		}
		slices.SortFunc(all, func(a, b domain.Journal) int {
			if c := b.JournalDate.Compare(a.JournalDate); c != 0 {
				return c
			}
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			switch {
			case a.JournalID > b.JournalID:
				return -1
			case a.JournalID < b.JournalID:
				return 1
			}
			return 0
		})
		if limit > 0 && len(all) > limit {
			all = all[:limit]
			last := all[len(all)-1]
			token := pagination.EncodeCursor(pagination.Cursor{Date: last.JournalDate, CreatedAt: last.CreatedAt, ID: last.JournalID})
			next = &token
		}
		out = all
		return nil
	})
	return out, next, nil
}

func (r *repo) UpdateJournalStatusAndLinks(_ context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	return r.write(func(st *state) error {
		j, ok := st.journals[journalID]
		if !ok {
			return fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
		}
		j = cloneJournal(j)
		j.Status = status
		if reversingJournalID != nil {
			j.ReversingJournalID = reversingJournalID
		}
		if originalJournalID != nil {
			j.OriginalJournalID = originalJournalID
		}
		j.Touch(updatedByUserID, updatedAt)
		st.journals[journalID] = j
		return nil
	})
}

func (r *repo) ListLinesByAccountID(_ context.Context, accountID string) ([]domain.JournalLine, error) {
	var out []domain.JournalLine
	_ = r.read(func(st *state) error {
		for _, id := range st.postingOrder {
			for _, l := range st.journals[id].Lines {
				if l.AccountID == accountID {
					out = append(out, l)
				}
			}
		}
		return nil
	})
	return out, nil
}

func (r *repo) HasPostings(_ context.Context, accountID string) (bool, error) {
	found := false
	_ = r.read(func(st *state) error {
		for _, j := range st.journals {
			for _, l := range j.Lines {
				if l.AccountID == accountID {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, nil
}
