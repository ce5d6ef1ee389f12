package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal together with its lines.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals returns journals newest first using token-based pagination.
	// It returns the journals, a token for the next page (nil on the last page), and an error.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal and all of its lines.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournalStatusAndLinks updates the status and reversal linkage of a journal.
	UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, updatedByUserID string, updatedAt time.Time) error
}

// JournalLineReader defines read operations over posted lines.
type JournalLineReader interface {
	// ListLinesByAccountID returns the account's complete posting history in posting order.
	ListLinesByAccountID(ctx context.Context, accountID string) ([]domain.JournalLine, error)

	// HasPostings reports whether any line references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalLineReader
}
