package pgsql

import (
	"context"
	"errors"

	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider returns repositories that run each statement on the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newProvider(dbPool)
}

func newProvider(db dbtx) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(db),
		JournalRepo:    newPgxJournalRepository(db),
		InvoiceRepo:    newPgxInvoiceRepository(db),
		PaymentRepo:    newPgxPaymentRepository(db),
		CreditNoteRepo: newPgxCreditNoteRepository(db),
		BankRepo:       newPgxBankRepository(db),
		ExpenseRepo:    newPgxExpenseRepository(db),
		RecurringRepo:  newPgxRecurringRepository(db),
	}
}

// PgxTransactionManager runs a unit of work in one READ COMMITTED transaction.
// Balance rows are locked with SELECT ... FOR UPDATE and versioned rows are
// guarded by optimistic updates, so the weaker isolation level is enough.
type PgxTransactionManager struct {
	pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

func NewTransactionManager(pool *pgxpool.Pool) *PgxTransactionManager {
	return &PgxTransactionManager{pool: pool}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (m *PgxTransactionManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return mapPgError(err, "failed to begin transaction")
	}
	defer func() {
		// Rollback after a successful commit is a no-op returning ErrTxClosed.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) && err == nil {
			err = mapPgError(rbErr, "failed to rollback transaction")
		}
	}()

	if err = fn(ctx, newProvider(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return mapPgError(err, "failed to commit transaction")
	}
	return nil
}
