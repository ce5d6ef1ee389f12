package pgsql

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

const profileColumns = `profile_id, category_id, vendor_id, description, amount, frequency, start_date, end_date,
	status, last_generated_date, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxRecurringRepository struct {
	BaseRepository
}

func newPgxRecurringRepository(db dbtx) *PgxRecurringRepository {
	return &PgxRecurringRepository{BaseRepository{db: db}}
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

func (r *PgxRecurringRepository) SaveProfile(ctx context.Context, profile domain.RecurringExpenseProfile) error {
	m := mapping.ToModelRecurringProfile(profile)
	_, err := r.db.Exec(ctx, `
		INSERT INTO recurring_expense_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.ProfileID, m.CategoryID, m.VendorID, m.Description, m.Amount, m.Frequency, m.StartDate, m.EndDate,
		m.Status, m.LastGeneratedDate, m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save recurring profile %s", m.ProfileID)
}

func (r *PgxRecurringRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.RecurringExpenseProfile, error) {
	m, err := collectOne[models.RecurringExpenseProfile](ctx, r.db,
		`SELECT `+profileColumns+` FROM recurring_expense_profiles WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, notFoundOr(err, "recurring profile", profileID)
	}
	p := mapping.ToDomainRecurringProfile(m)
	return &p, nil
}

func (r *PgxRecurringRepository) ListProfiles(ctx context.Context, status domain.RecurringStatus, limit int, offset int) ([]domain.RecurringExpenseProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM recurring_expense_profiles`
	var args []any
	if status != "" {
		args = append(args, string(status))
		query += ` WHERE status = $1`
	}
	query += ` ORDER BY created_at, profile_id`
	page, args := pageClause(args, limit, offset)

	ms, err := collectRows[models.RecurringExpenseProfile](ctx, r.db, query+page, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list recurring profiles")
	}
	return mapping.ToDomainRecurringProfileSlice(ms), nil
}

// UpdateProfile is an optimistic write; a concurrent generator bumping the
// version first makes this one fail with ConcurrentModification.
func (r *PgxRecurringRepository) UpdateProfile(ctx context.Context, profile domain.RecurringExpenseProfile, expectedVersion int64) error {
	m := mapping.ToModelRecurringProfile(profile)
	tag, err := r.db.Exec(ctx, `
		UPDATE recurring_expense_profiles
		SET category_id = $3, vendor_id = $4, description = $5, amount = $6, frequency = $7, start_date = $8,
			end_date = $9, status = $10, last_generated_date = $11, version = $12, last_updated_at = $13, last_updated_by = $14
		WHERE profile_id = $1 AND version = $2`,
		m.ProfileID, expectedVersion, m.CategoryID, m.VendorID, m.Description, m.Amount, m.Frequency, m.StartDate,
		m.EndDate, m.Status, m.LastGeneratedDate, m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update recurring profile %s", m.ProfileID)
	}
	if tag.RowsAffected() == 0 {
		return versionConflict(ctx, r.db, "recurring_expense_profiles", "profile_id", "recurring profile", m.ProfileID, expectedVersion)
	}
	return nil
}
