package repositories

import (
	"context"
)

// TxFunc runs inside a transaction with repositories bound to it.
type TxFunc func(ctx context.Context, repos RepositoryProvider) error

// TransactionManager runs units of work atomically.
type TransactionManager interface {
	// WithinTransaction commits when fn returns nil and rolls back every write otherwise.
	// Serialization failures surface as apperrors.KindConcurrentModification.
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
