package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backend/internal/middleware"
)

// Clock returns the current time. Services take it as an option so tests can pin "today".
type Clock func() time.Time

// BaseService provides common functionality for all services
type BaseService struct {
	clock Clock
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// LogFailure logs err at a level matching its kind: caller mistakes are
// logged at debug, everything else at error.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isExpected(err) {
		args := append([]any{slog.String("reason", err.Error())}, keyvals...)
		s.LogDebug(ctx, msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isExpected(err error) bool {
	var le *apperrors.LedgerError
	return errors.As(err, &le) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrForbidden)
}

// Option configures the clock of any service embedding BaseService.
type Option func(*BaseService)

// WithClock overrides time.Now.
func WithClock(clock Clock) Option {
	return func(b *BaseService) {
		b.clock = clock
	}
}

func newBase(opts []Option) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// maxNumberAttempts bounds the retries after a sequence number collision.
const maxNumberAttempts = 5

// withSequenceRetry runs fn in a write transaction. A failed attempt rolls back
// its own counter increment, so after a sequence collision resync is committed
// separately to move the counter past the numbers already stored.
func (s *BaseService) withSequenceRetry(ctx context.Context, tm portsrepo.TransactionManager, fn, resync portsrepo.TxFunc) error {
	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		err = tm.WithTx(ctx, writeTx, fn)
		if !errors.Is(err, apperrors.ErrDuplicateSequenceNumber) {
			return err
		}
		s.LogInfo(ctx, "Sequence number collision, resyncing counter",
			slog.Int("attempt", attempt), slog.String("reason", err.Error()))
		if rerr := tm.WithTx(ctx, writeTx, resync); rerr != nil {
			return rerr
		}
	}
	return err
}

// Transaction options used by the ledger services.
var (
	writeTx  = portsrepo.TxOptions{Isolation: portsrepo.ReadCommitted}
	readTx   = portsrepo.TxOptions{Isolation: portsrepo.RepeatableRead, ReadOnly: true}
	recalcTx = portsrepo.TxOptions{Isolation: portsrepo.RepeatableRead}
)
