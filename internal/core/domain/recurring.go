package domain

import "time"

// Frequency of a recurring expense.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// RecurringStatus of a profile.
type RecurringStatus string

const (
	RecurringActive   RecurringStatus = "active"
	RecurringPaused   RecurringStatus = "paused"
	RecurringFinished RecurringStatus = "finished"
)

// RecurringExpenseProfile is a template that generates Expense rows on demand.
// LastGeneratedDate never moves backward.
type RecurringExpenseProfile struct {
	ProfileID         string          `json:"profileID"`
	CategoryID        string          `json:"categoryID"`
	VendorID          *string         `json:"vendorID,omitempty"`
	Description       string          `json:"description"`
	Amount            Money           `json:"amount"`
	Frequency         Frequency       `json:"frequency"`
	StartDate         time.Time       `json:"startDate"`
	EndDate           *time.Time      `json:"endDate,omitempty"`
	Status            RecurringStatus `json:"status"`
	LastGeneratedDate *time.Time      `json:"lastGeneratedDate,omitempty"`
	Version           int64           `json:"version"`
	AuditFields
}
