package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

const (
	bankAccountColumns = `bank_account_id, name, account_number, current_balance, is_active, version,
	created_at, created_by, last_updated_at, last_updated_by`
	bankTransactionColumns = `bank_transaction_id, bank_account_id, transaction_date, type, amount, description, reference,
	reconciled, created_at, created_by, last_updated_at, last_updated_by`
)

type PgxBankRepository struct {
	BaseRepository
}

func newPgxBankRepository(db dbtx) *PgxBankRepository {
	return &PgxBankRepository{BaseRepository{db: db}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	_, err := r.db.Exec(ctx, `
		INSERT INTO bank_accounts (`+bankAccountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.BankAccountID, m.Name, m.AccountNumber, m.CurrentBalance, m.IsActive, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save bank account %s", m.BankAccountID)
}

func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	m, err := collectOne[models.BankAccount](ctx, r.db,
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE bank_account_id = $1`, bankAccountID)
	if err != nil {
		return nil, notFoundOr(err, "bank account", bankAccountID)
	}
	acc := mapping.ToDomainBankAccount(m)
	return &acc, nil
}

func (r *PgxBankRepository) ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error) {
	page, args := pageClause(nil, limit, offset)
	ms, err := collectRows[models.BankAccount](ctx, r.db,
		`SELECT `+bankAccountColumns+` FROM bank_accounts ORDER BY name, bank_account_id`+page, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list bank accounts")
	}
	return mapping.ToDomainBankAccountSlice(ms), nil
}

// UpdateBankAccount is an optimistic write guarded by the version column.
func (r *PgxBankRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount, expectedVersion int64) error {
	m := mapping.ToModelBankAccount(account)
	tag, err := r.db.Exec(ctx, `
		UPDATE bank_accounts
		SET name = $3, is_active = $4, current_balance = $5, version = $6, last_updated_at = $7, last_updated_by = $8
		WHERE bank_account_id = $1 AND version = $2`,
		m.BankAccountID, expectedVersion, m.Name, m.IsActive, m.CurrentBalance, m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update bank account %s", m.BankAccountID)
	}
	if tag.RowsAffected() == 0 {
		return versionConflict(ctx, r.db, "bank_accounts", "bank_account_id", "bank account", m.BankAccountID, expectedVersion)
	}
	return nil
}

func (r *PgxBankRepository) SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(txn)
	_, err := r.db.Exec(ctx, `
		INSERT INTO bank_transactions (`+bankTransactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.BankTransactionID, m.BankAccountID, m.TransactionDate, m.Type, m.Amount, m.Description, m.Reference,
		m.Reconciled, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save bank transaction %s", m.BankTransactionID)
}

func (r *PgxBankRepository) FindBankTransactionByID(ctx context.Context, bankTransactionID string) (*domain.BankTransaction, error) {
	m, err := collectOne[models.BankTransaction](ctx, r.db,
		`SELECT `+bankTransactionColumns+` FROM bank_transactions WHERE bank_transaction_id = $1`, bankTransactionID)
	if err != nil {
		return nil, notFoundOr(err, "bank transaction", bankTransactionID)
	}
	t := mapping.ToDomainBankTransaction(m)
	return &t, nil
}

func (r *PgxBankRepository) DeleteBankTransaction(ctx context.Context, bankTransactionID string) error {
	return execAffecting(ctx, r.db, "bank transaction", bankTransactionID,
		`DELETE FROM bank_transactions WHERE bank_transaction_id = $1`, bankTransactionID)
}

// ListBankTransactionsByAccountID returns the transactions oldest first.
func (r *PgxBankRepository) ListBankTransactionsByAccountID(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error) {
	ms, err := collectRows[models.BankTransaction](ctx, r.db, `
		SELECT `+bankTransactionColumns+` FROM bank_transactions
		WHERE bank_account_id = $1
		ORDER BY transaction_date, created_at, bank_transaction_id`, bankAccountID)
	if err != nil {
		return nil, mapPgError(err, "failed to list transactions of bank account %s", bankAccountID)
	}
	return mapping.ToDomainBankTransactionSlice(ms), nil
}

func (r *PgxBankRepository) MarkBankTransactionReconciled(ctx context.Context, bankTransactionID string, reconciled bool, userID string, now time.Time) error {
	return execAffecting(ctx, r.db, "bank transaction", bankTransactionID, `
		UPDATE bank_transactions
		SET reconciled = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bank_transaction_id = $1`,
		bankTransactionID, reconciled, now, userID,
	)
}
