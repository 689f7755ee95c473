package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

// querier is the subset of *pgxpool.Pool and pgx.Tx the repositories need, so
// the same repository code runs against the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB querier
}

// isUniqueViolation reports whether err is a unique_violation, optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// notFoundOrInternal maps pgx.ErrNoRows to apperrors.ErrNotFound and wraps anything else.
func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return apperrors.NewAppError(500, msg, err)
}

// expectOneRow turns an UPDATE/DELETE that touched no rows into apperrors.ErrNotFound.
func expectOneRow(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, entity, id)
	}
	return nil
}

// sendBatch executes b and surfaces the first failing statement.
func sendBatch(ctx context.Context, db querier, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	return db.SendBatch(ctx, b).Close()
}
