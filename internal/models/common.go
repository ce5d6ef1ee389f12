// Package models holds the row shapes of the PostgreSQL tables. Money columns
// are BIGINT minor units and stay int64 here; internal/utils/mapping converts
// them to domain types.
package models

import "time"

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
