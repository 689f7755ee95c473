package repositories

import (
	"context"
)

// TxIsolation selects the isolation level of a unit of work.
type TxIsolation int

const (
	// ReadCommitted is the database default.
	ReadCommitted TxIsolation = iota
	// RepeatableRead gives the unit of work a stable snapshot of every table it reads.
	RepeatableRead
)

// TxOptions configures a unit of work.
type TxOptions struct {
	Isolation TxIsolation
	ReadOnly  bool
}

// TxFunc is the body of a unit of work. The repositories it receives are bound
// to the surrounding transaction.
type TxFunc func(ctx context.Context, repos Repositories) error

// TransactionManager runs units of work atomically: if fn returns an error
// (or ctx is cancelled) nothing fn wrote is kept.
type TransactionManager interface {
	WithTx(ctx context.Context, opts TxOptions, fn TxFunc) error
}
