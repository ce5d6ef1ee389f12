package dto

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// JournalLineRequest is one line as entered: exactly one of debit or credit carries the amount.
type JournalLineRequest struct {
	AccountID string       `json:"accountID"`
	Debit     domain.Money `json:"debit" swaggertype:"string" example:"100.00"`
	Credit    domain.Money `json:"credit" swaggertype:"string" example:"0"`
	Notes     string       `json:"notes"`
}

// PostJournalRequest defines the data needed to post a journal entry.
// Line rules are enforced by the ledger validator so callers get a typed error with the line index.
type PostJournalRequest struct {
	Date        Date                 `json:"date" binding:"required" swaggertype:"string" example:"2024-01-01"`
	Description string               `json:"description" binding:"max=500"`
	Lines       []JournalLineRequest `json:"lines"`
}

// PostingLines converts the request lines for validation.
func (r PostJournalRequest) PostingLines() []domain.PostingLine {
	lines := make([]domain.PostingLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.PostingLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit, Notes: l.Notes}
	}
	return lines
}

// ReverseJournalRequest optionally overrides the reversal's date and description.
type ReverseJournalRequest struct {
	Date        *Date  `json:"date" swaggertype:"string" example:"2024-02-01"`
	Description string `json:"description" binding:"max=500"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is a page of journals with their lines.
type ListJournalsResponse struct {
	Journals  []domain.Journal `json:"journals"`
	NextToken *string          `json:"nextToken,omitempty"`
}
