package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/platform/lock"
	"github.com/SscSPs/gl_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const recalcJob = "recalculate"

type balanceService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	locker  lock.Locker
	lockTTL time.Duration
}

// BalanceOption configures the balance calculator.
type BalanceOption func(*balanceService)

// WithLocker sets the per-company lock used to keep recalculations from overlapping.
func WithLocker(locker lock.Locker, ttl time.Duration) BalanceOption {
	return func(s *balanceService) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

// WithBalanceClock overrides time.Now for the balance calculator.
func WithBalanceClock(clock Clock) BalanceOption {
	return func(s *balanceService) {
		s.clock = clock
	}
}

// NewBalanceService creates the balance calculator. Without WithLocker an
// in-process locker is used.
func NewBalanceService(repos portsrepo.RepositoryProvider, opts ...BalanceOption) portssvc.BalanceSvcFacade {
	svc := &balanceService{
		repos:   repos,
		locker:  lock.NewLocalLocker(),
		lockTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// RecalculateBalances rebuilds every account balance of the company from the
// posted entry lines and the resolvable import rows. All reads and the final
// write share one repeatable-read transaction.
func (s *balanceService) RecalculateBalances(ctx context.Context, companyID string, withMappings bool, userID string) (*domain.RecalculationResult, error) {
	key := lock.Key(recalcJob, companyID)
	held, err := s.locker.Obtain(ctx, key, s.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			s.LogDebug(ctx, "Recalculation already running", slog.String("company_id", companyID))
			return nil, apperrors.NewAppError(http.StatusConflict, "a balance recalculation is already running for this company", err)
		}
		s.LogError(ctx, err, "Failed to obtain recalculation lock", slog.String("company_id", companyID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to obtain recalculation lock", err)
	}
	defer func() {
		// The lock must be released even when ctx was cancelled.
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			s.LogError(ctx, err, "Failed to release recalculation lock", slog.String("company_id", companyID))
		}
	}()

	start := time.Now()
	var result *domain.RecalculationResult
	err = s.repos.TxManager.WithTx(ctx, recalcTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		r, err := s.recalculate(ctx, repos, companyID, withMappings, userID)
		result = r
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Balance recalculation failed",
			slog.String("company_id", companyID),
			slog.Bool("with_mappings", withMappings))
		return nil, err
	}

	s.LogInfo(ctx, "Balances recalculated",
		slog.String("company_id", companyID),
		slog.Bool("with_mappings", withMappings),
		slog.Int("accounts_updated", result.AccountsUpdated),
		slog.Int("total_entries", result.TotalEntries),
		slog.Int("mapped_entries", result.MappedEntries),
		slog.Duration("took", time.Since(start)))
	return result, nil
}

func (s *balanceService) recalculate(ctx context.Context, repos portsrepo.Repositories, companyID string, withMappings bool, userID string) (*domain.RecalculationResult, error) {
	accounts, err := repos.AccountRepo.ListAllAccounts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	mappings, err := repos.MappingRepo.ListMappings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	lines, err := repos.JournalRepo.ListPostedLines(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rows, err := repos.ImportRowRepo.ListImportRows(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resolver := newLabelResolver(accounts, mappings)
	staging := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		staging[acc.AccountID] = decimal.Zero
	}
	result := &domain.RecalculationResult{}

	for _, line := range lines {
		acc, ok := resolver.accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("posted line %s references unknown account %s", line.LineID, line.AccountID)
		}
		amount, err := accounting.SignedLineAmount(line, acc.AccountType)
		if err != nil {
			return nil, err
		}
		staging[acc.AccountID] = staging[acc.AccountID].Add(amount)
		result.TotalEntries++
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		acc, viaMapping, ok := resolver.resolve(domain.FieldAccountName, row.LabelFor(domain.FieldAccountName), withMappings)
		if !ok {
			continue
		}
		amount, err := accounting.SignedImportAmount(row, acc.AccountType)
		if err != nil {
			return nil, err
		}
		staging[acc.AccountID] = staging[acc.AccountID].Add(amount)
		result.TotalEntries++
		if viaMapping {
			result.MappedEntries++
		}
	}

	now := s.Now()
	if err := repos.AccountRepo.SetAccountBalances(ctx, companyID, staging, userID, now); err != nil {
		return nil, err
	}
	result.AccountsUpdated = len(staging)
	result.CalculatedAt = now
	return result, nil
}
