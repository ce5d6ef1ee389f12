package pgsql

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, name, account_type, description, editable, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db dbtx) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{db: db}}
}

// Ensure PgxAccountRepository implements the account facade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.AccountID, m.Name, m.AccountType, m.Description, m.Editable, m.IsActive, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save account %s", m.AccountID)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m, err := collectOne[models.Account](ctx, r.db,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, notFoundOr(err, "account", accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.findAccounts(ctx, accountIDs, "")
}

// FindAccountsByIDsForUpdate locks the rows in id order so concurrent posters
// touching overlapping accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.findAccounts(ctx, accountIDs, " ORDER BY account_id FOR UPDATE")
}

func (r *PgxAccountRepository) findAccounts(ctx context.Context, accountIDs []string, suffix string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ms, err := collectRows[models.Account](ctx, r.db,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1)`+suffix, accountIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query accounts by IDs")
	}
	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

// ListAccounts retrieves accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	page, args := pageClause(nil, limit, offset)
	ms, err := collectRows[models.Account](ctx, r.db,
		`SELECT `+accountColumns+` FROM accounts ORDER BY name, account_id`+page, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list accounts")
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount updates the editable attributes of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return execAffecting(ctx, r.db, "account", account.AccountID, `
		UPDATE accounts
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1`,
		account.AccountID, account.Name, account.Description, account.IsActive, account.LastUpdatedAt, account.LastUpdatedBy,
	)
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	return execAffecting(ctx, r.db, "account", accountID, `DELETE FROM accounts WHERE account_id = $1`, accountID)
}

// UpdateAccountBalances applies every delta in one round trip.
func (r *PgxAccountRepository) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]domain.Money, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`
			UPDATE accounts
			SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
			WHERE account_id = $4`,
			int64(balanceChanges[id]), now, userID, id,
		)
	}
	tags, err := sendBatch(ctx, r.db, batch, "update account balances")
	if err != nil {
		return err
	}
	for i, tag := range tags {
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update balance of account %s: %w", ids[i], apperrors.ErrNotFound)
		}
	}
	return nil
}
