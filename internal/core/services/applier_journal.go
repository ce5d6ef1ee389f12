package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// transactionApplier is the only writer of account balances, amount_paid and
// bank balances. Every method is one unit of work run through runInTx.
type transactionApplier struct {
	BaseService
}

// NewTransactionApplier creates the TransactionApplierSvc.
func NewTransactionApplier(base BaseService) portssvc.TransactionApplierSvc {
	return &transactionApplier{BaseService: base}
}

var _ portssvc.TransactionApplierSvc = (*transactionApplier)(nil)

func (s *transactionApplier) PostJournalEntry(ctx context.Context, req dto.PostJournalRequest, userID string) (*domain.PostingResult, error) {
	postingLines := req.PostingLines()
	date := domain.NormalizeDate(req.Date.Time)

	var result *domain.PostingResult
	err := s.runInTx(ctx, "post_journal", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		result, err = s.postJournal(ctx, repos, date, req.Description, postingLines, nil, userID, s.now())
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_id", result.Journal.JournalID),
		slog.String("amount", result.Journal.Amount.String()),
		slog.Int("line_count", len(result.Journal.Lines)))
	return result, nil
}

func (s *transactionApplier) ReverseJournalEntry(ctx context.Context, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.PostingResult, error) {
	var result *domain.PostingResult
	err := s.runInTx(ctx, "reverse_journal", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		original, err := repos.JournalRepo.FindJournalByID(ctx, journalID)
		if err != nil {
			return notFound(err)
		}
		if original.Status == domain.Reversed {
			return apperrors.New(apperrors.KindInvalidState, "journal %s is already reversed", journalID)
		}
		if original.OriginalJournalID != nil {
			return apperrors.New(apperrors.KindInvalidState, "journal %s is itself a reversal", journalID)
		}

		now := s.now()
		date := domain.NormalizeDate(now)
		if d := req.Date.Ptr(); d != nil {
			date = *d
		}
		description := req.Description
		if description == "" {
			description = fmt.Sprintf("Reversal of: %s", original.Description)
		}

		lines := make([]domain.PostingLine, len(original.Lines))
		for i, l := range original.Lines {
			lines[i] = domain.PostingLine{AccountID: l.AccountID, Notes: l.Notes}
			if l.Side.Opposite() == domain.Debit {
				lines[i].Debit = l.Amount
			} else {
				lines[i].Credit = l.Amount
			}
		}

		result, err = s.postJournal(ctx, repos, date, description, lines, &original.JournalID, userID, now)
		if err != nil {
			return err
		}
		reversingID := result.Journal.JournalID
		return repos.JournalRepo.UpdateJournalStatusAndLinks(ctx, original.JournalID, domain.Reversed, &reversingID, nil, userID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_journal_id", journalID),
		slog.String("reversing_journal_id", result.Journal.JournalID))
	return result, nil
}

// postJournal validates lines against the locked accounts, writes the journal
// with running balances and applies the incremental balance changes.
func (s *transactionApplier) postJournal(
	ctx context.Context,
	repos portsrepo.RepositoryProvider,
	date time.Time,
	description string,
	postingLines []domain.PostingLine,
	originalJournalID *string,
	userID string,
	now time.Time,
) (*domain.PostingResult, error) {
	accounts, err := repos.AccountRepo.FindAccountsByIDsForUpdate(ctx, accounting.AccountIDs(postingLines))
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	if err := accounting.ValidateJournalLines(postingLines, accounts); err != nil {
		return nil, err
	}

	journal := domain.Journal{
		JournalID:         uuid.NewString(),
		JournalDate:       date,
		Description:       description,
		Status:            domain.Posted,
		OriginalJournalID: originalJournalID,
		Lines:             make([]domain.JournalLine, len(postingLines)),
		AuditFields:       domain.NewAuditFields(userID, now),
	}
	for i, pl := range postingLines {
		journal.Lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			JournalID: journal.JournalID,
			LineNo:    i + 1,
			AccountID: pl.AccountID,
			Side:      pl.Side(),
			Amount:    pl.Amount(),
			Notes:     pl.Notes,
			CreatedAt: now,
		}
		journal.Amount += pl.Debit
	}

	if err := accounting.ApplyRunningBalances(journal.Lines, accounts); err != nil {
		return nil, apperrors.Wrap(apperrors.KindIntegrityViolation, err, "journal %s", journal.JournalID)
	}
	changes, err := accounting.BalanceChanges(journal.Lines, accounts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindIntegrityViolation, err, "journal %s", journal.JournalID)
	}

	if err := repos.JournalRepo.SaveJournal(ctx, journal); err != nil {
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}
	if err := repos.AccountRepo.UpdateAccountBalances(ctx, changes, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update account balances: %w", err)
	}

	balances := make(map[string]domain.Money, len(changes))
	for id, delta := range changes {
		balances[id] = accounts[id].Balance + delta
	}
	return &domain.PostingResult{Journal: journal, Balances: balances}, nil
}
