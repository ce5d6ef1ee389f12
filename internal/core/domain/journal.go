package domain

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Side indicates whether a journal line is a Debit or a Credit.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

func (s Side) IsValid() bool { return s == Debit || s == Credit }

// Opposite returns the other side; used when building reversals.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// Journal is a balanced set of postings dated on a single day.
// Posted journals are immutable; corrections are made with a reversing journal.
type Journal struct {
	JournalID          string        `json:"journalID"`
	JournalDate        time.Time     `json:"journalDate"`
	Description        string        `json:"description"`
	Status             JournalStatus `json:"status"`
	Amount             Money         `json:"amount"` // sum of debits
	OriginalJournalID  *string       `json:"originalJournalID,omitempty"`
	ReversingJournalID *string       `json:"reversingJournalID,omitempty"`
	Lines              []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is one posting against one account.
type JournalLine struct {
	LineID    string `json:"lineID"`
	JournalID string `json:"journalID"`
	LineNo    int    `json:"lineNo"`
	AccountID string `json:"accountID"`
	Side      Side   `json:"side"`
	Amount    Money  `json:"amount"` // always positive
	Notes     string `json:"notes"`
	// RunningBalance is the account balance right after this line was applied.
	RunningBalance Money     `json:"runningBalance"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PostingLine is a proposed line as entered: an account with a debit column
// and a credit column, exactly one of which must carry an amount.
type PostingLine struct {
	AccountID string
	Debit     Money
	Credit    Money
	Notes     string
}

// Side returns the side carrying the amount. Only meaningful after validation.
func (p PostingLine) Side() Side {
	if p.Debit > 0 {
		return Debit
	}
	return Credit
}

// Amount returns the populated column. Only meaningful after validation.
func (p PostingLine) Amount() Money {
	if p.Debit > 0 {
		return p.Debit
	}
	return p.Credit
}
