package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// works unchanged inside and outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db dbtx
}

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"

	recurringPeriodConstraint = "uq_expenses_recurring_period"
)

// mapPgError turns driver errors into the sentinels the services understand.
func mapPgError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return apperrors.Wrap(apperrors.KindConcurrentModification, err, "%s", msg)
		case pgUniqueViolation:
			if pgErr.ConstraintName == recurringPeriodConstraint {
				return apperrors.Wrap(apperrors.KindConcurrentModification, err, "%s: period already generated", msg)
			}
			return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrValidation, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notFoundOr returns ErrNotFound for pgx.ErrNoRows and a mapped error otherwise.
func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrNotFound)
	}
	return mapPgError(err, "failed to find %s %s", entity, id)
}

// pageClause appends LIMIT/OFFSET placeholders. limit <= 0 means no limit.
func pageClause(args []any, limit, offset int) (string, []any) {
	clause := ""
	if limit > 0 {
		args = append(args, limit)
		clause += " LIMIT $" + strconv.Itoa(len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		clause += " OFFSET $" + strconv.Itoa(len(args))
	}
	return clause, args
}

func collectRows[T any](ctx context.Context, db dbtx, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func collectOne[T any](ctx context.Context, db dbtx, query string, args ...any) (T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

// versionConflict distinguishes a stale version from a missing row after an
// optimistic UPDATE matched nothing.
func versionConflict(ctx context.Context, db dbtx, table, idColumn, entity, id string, expectedVersion int64) error {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM " + table + " WHERE " + idColumn + " = $1)"
	if err := db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return mapPgError(err, "failed to check %s %s", entity, id)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrNotFound)
	}
	return apperrors.New(apperrors.KindConcurrentModification,
		"%s %s was modified concurrently (expected version %d)", entity, id, expectedVersion)
}

// execAffecting runs a statement that must touch exactly one row.
func execAffecting(ctx context.Context, db dbtx, entity, id, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to write %s %s", entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrNotFound)
	}
	return nil
}

// sendBatch executes every queued statement and closes the results.
// It returns the command tag of each statement in queue order.
func sendBatch(ctx context.Context, db dbtx, batch *pgx.Batch, what string) ([]pgconn.CommandTag, error) {
	br := db.SendBatch(ctx, batch)
	tags := make([]pgconn.CommandTag, 0, batch.Len())
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return nil, mapPgError(err, "failed to %s (statement %d)", what, i)
		}
		tags = append(tags, tag)
	}
	if err := br.Close(); err != nil {
		return nil, mapPgError(err, "failed to %s", what)
	}
	return tags, nil
}
