package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AccountAsset     AccountType = "ASSET"
	AccountLiability AccountType = "LIABILITY"
	AccountEquity    AccountType = "EQUITY"
	AccountRevenue   AccountType = "REVENUE"
	AccountExpense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountAsset, AccountLiability, AccountEquity, AccountRevenue, AccountExpense:
		return true
	}
	return false
}

// IsDebitNormal is true for types whose balance grows with debits.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountAsset || t == AccountExpense
}

// Account is a chart-of-accounts entry with its materialized balance.
type Account struct {
	AccountID   string      `json:"accountID"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"`
	// Editable is false for system-seeded accounts, which can never be deleted.
	Editable bool  `json:"editable"`
	IsActive bool  `json:"isActive"` // false means archived
	Balance  Money `json:"balance"`
	AuditFields
}
