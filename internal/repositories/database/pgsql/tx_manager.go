package pgsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionManager runs units of work inside a pgx transaction.
type PgxTransactionManager struct {
	pool *pgxpool.Pool
}

func newPgxTransactionManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &PgxTransactionManager{pool: pool}
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

func toPgxTxOptions(opts portsrepo.TxOptions) pgx.TxOptions {
	txOpts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}
	if opts.Isolation == portsrepo.RepeatableRead {
		txOpts.IsoLevel = pgx.RepeatableRead
	}
	if opts.ReadOnly {
		txOpts.AccessMode = pgx.ReadOnly
	}
	return txOpts
}

// WithTx begins a transaction, hands fn repositories bound to it, and commits
// only if fn succeeds. Errors from fn are returned unchanged.
func (m *PgxTransactionManager) WithTx(ctx context.Context, opts portsrepo.TxOptions, fn portsrepo.TxFunc) error {
	tx, err := m.pool.BeginTx(ctx, toPgxTxOptions(opts))
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "Transaction rollback failed", "error", rbErr)
		}
	}()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
