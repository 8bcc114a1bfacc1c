package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the repositories react to.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB   DBTX
	inTx bool
}

// lockClause returns a row lock clause when running inside a transaction.
func (r *BaseRepository) lockClause() string {
	if r.inTx {
		return " FOR UPDATE"
	}
	return ""
}

func internalError(msg string, err error) error {
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func pgConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// execBatch sends queued statements and returns the first failure.
func execBatch(ctx context.Context, db DBTX, batch *pgx.Batch, what string) error {
	br := db.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = err
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = err
	}
	if batchErr != nil {
		if pgErrorCode(batchErr) == codeUniqueViolation {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
		}
		return internalError("failed to write "+what, batchErr)
	}
	return nil
}

// PgxTxManager runs units of work in a database transaction, retrying serialization conflicts.
type PgxTxManager struct {
	Pool       *pgxpool.Pool
	MaxRetries int
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

func isRetryable(err error) bool {
	code := pgErrorCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// WithinTransaction implements portsrepo.TransactionManager.
func (m *PgxTxManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	for attempt := 1; ; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt > m.MaxRetries {
			return fmt.Errorf("%w: ledger update kept conflicting after %d attempts: %v", apperrors.ErrConflict, attempt, err)
		}
	}
}

func (m *PgxTxManager) runOnce(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := m.Pool.Begin(ctx)
	if err != nil {
		return internalError("failed to begin transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) && err == nil {
			err = internalError("failed to rollback transaction", rbErr)
		}
	}()

	if err = fn(ctx, newProvider(tx, true, txBound{})); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		if isRetryable(err) {
			return err
		}
		return internalError("failed to commit transaction", err)
	}
	return nil
}

// txBound is the transaction manager handed out inside a transaction: nested units of work
// join the outer transaction.
type txBound struct {
	repos *portsrepo.RepositoryProvider
}

func (t txBound) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return fn(ctx, *t.repos)
}
