package models

// Account is a row of the accounts table.
type Account struct {
	AccountID   string `db:"account_id"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	Description string `db:"description"`
	Editable    bool   `db:"editable"`
	IsActive    bool   `db:"is_active"`
	Balance     int64  `db:"balance"`
	AuditFields
}
