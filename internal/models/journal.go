package models

import "time"

// Journal is a row of the journals table.
type Journal struct {
	JournalID          string    `db:"journal_id"`
	JournalDate        time.Time `db:"journal_date"`
	Description        string    `db:"description"`
	Status             string    `db:"status"`
	Amount             int64     `db:"amount"`
	OriginalJournalID  *string   `db:"original_journal_id"`
	ReversingJournalID *string   `db:"reversing_journal_id"`
	AuditFields
}

// JournalLine is a row of the journal_lines table. posting_seq is assigned by the
// database and only used for ordering.
type JournalLine struct {
	LineID         string    `db:"line_id"`
	JournalID      string    `db:"journal_id"`
	LineNo         int       `db:"line_no"`
	AccountID      string    `db:"account_id"`
	Side           string    `db:"side"`
	Amount         int64     `db:"amount"`
	Notes          string    `db:"notes"`
	RunningBalance int64     `db:"running_balance"`
	CreatedAt      time.Time `db:"created_at"`
}
