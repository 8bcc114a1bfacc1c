package repositories

import (
	"context"
)

// TxFunc is the unit of work run inside a transaction. It must use only the repositories it is given.
type TxFunc func(ctx context.Context, repos RepositoryProvider) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTransaction runs fn atomically: either every write fn makes is committed or none is.
	// Concurrent-update conflicts on ledger rows are retried a bounded number of times before
	// surfacing as apperrors.ErrConflict.
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
