package accounting

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// MinJournalLines is the smallest number of lines a journal may have.
const MinJournalLines = 2

// ValidateJournalLines checks a proposed journal, stopping at the first failure:
// line count, per-line shape, balance, non-zero total, then account existence.
// accounts holds whatever rows were found for the referenced ids.
func ValidateJournalLines(lines []domain.PostingLine, accounts map[string]domain.Account) error {
	if len(lines) < MinJournalLines {
		return apperrors.NewFieldError(apperrors.KindInsufficientLines, "lines",
			"a journal needs at least %d lines, got %d", MinJournalLines, len(lines))
	}

	for i, l := range lines {
		if l.Debit < 0 || l.Credit < 0 {
			return apperrors.NewLineError(apperrors.KindInvalidLine, i, "amounts cannot be negative")
		}
		if (l.Debit > 0) == (l.Credit > 0) {
			return apperrors.NewLineError(apperrors.KindInvalidLine, i, "exactly one of debit or credit must be positive")
		}
	}

	var debits, credits domain.Money
	for i, l := range lines {
		next := debits + l.Debit
		if next < debits {
			return apperrors.NewLineError(apperrors.KindInvalidLine, i, "debit total overflows")
		}
		debits = next
		next = credits + l.Credit
		if next < credits {
			return apperrors.NewLineError(apperrors.KindInvalidLine, i, "credit total overflows")
		}
		credits = next
	}
	if debits != credits {
		return apperrors.NewFieldError(apperrors.KindUnbalanced, "lines",
			"debits %s do not equal credits %s", debits, credits)
	}
	if debits <= 0 {
		return apperrors.NewFieldError(apperrors.KindZeroAmount, "lines", "journal total must be greater than zero")
	}

	for i, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return apperrors.NewLineError(apperrors.KindUnknownAccount, i, "account %q does not exist", l.AccountID)
		}
		if !acc.IsActive {
			return apperrors.NewLineError(apperrors.KindUnknownAccount, i, "account %q is archived", l.AccountID)
		}
	}
	return nil
}

// AccountIDs returns the distinct account ids referenced by lines, in first-seen order.
func AccountIDs(lines []domain.PostingLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}
