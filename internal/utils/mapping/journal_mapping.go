package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

// ToModelJournal converts a domain Journal header to a model Journal. Lines are mapped separately.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		JournalDate:        domain.NormalizeDate(d.JournalDate),
		Description:        d.Description,
		Status:             string(d.Status),
		Amount:             int64(d.Amount),
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal without lines.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		JournalDate:        domain.NormalizeDate(m.JournalDate),
		Description:        m.Description,
		Status:             domain.JournalStatus(m.Status),
		Amount:             domain.Money(m.Amount),
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainJournalSlice(ms []models.Journal) []domain.Journal {
	return mapSlice(ms, ToDomainJournal)
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		JournalID:      d.JournalID,
		LineNo:         d.LineNo,
		AccountID:      d.AccountID,
		Side:           string(d.Side),
		Amount:         int64(d.Amount),
		Notes:          d.Notes,
		RunningBalance: int64(d.RunningBalance),
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:         m.LineID,
		JournalID:      m.JournalID,
		LineNo:         m.LineNo,
		AccountID:      m.AccountID,
		Side:           domain.Side(m.Side),
		Amount:         domain.Money(m.Amount),
		Notes:          m.Notes,
		RunningBalance: domain.Money(m.RunningBalance),
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	return mapSlice(ms, ToDomainJournalLine)
}
