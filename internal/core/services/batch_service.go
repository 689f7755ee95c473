package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/SscSPs/gl_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type batchService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewBatchService creates the batch workflow engine.
func NewBatchService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.BatchSvcFacade {
	return &batchService{
		BaseService: newBase(opts),
		repos:       repos,
	}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

func loadBatch(ctx context.Context, repo portsrepo.BatchReader, companyID, batchID string, forUpdate bool) (*domain.Batch, error) {
	var (
		b   *domain.Batch
		err error
	)
	if forUpdate {
		b, err = repo.FindBatchByIDForUpdate(ctx, companyID, batchID)
	} else {
		b, err = repo.FindBatchByID(ctx, companyID, batchID)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewLedgerError(apperrors.ErrNotFound, batchID, "batch not found")
	}
	return b, err
}

// refreshBatchAggregates recomputes and stores the totals of b from its current members.
func refreshBatchAggregates(ctx context.Context, repos portsrepo.Repositories, b *domain.Batch, userID string, now time.Time) error {
	members, err := repos.JournalRepo.FindJournalsByBatchID(ctx, b.CompanyID, b.BatchID)
	if err != nil {
		return err
	}
	b.RecomputeAggregates(members)
	b.Touch(userID, now)
	return repos.BatchRepo.UpdateBatch(ctx, *b)
}

func transitionError(b *domain.Batch, next domain.BatchStatus) error {
	return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, b.BatchID,
		"batch cannot move from %s to %s", b.Status, next)
}

func (s *batchService) GetBatchByID(ctx context.Context, companyID string, batchID string) (*domain.Batch, error) {
	b, err := loadBatch(ctx, s.repos.BatchRepo, companyID, batchID, false)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get batch", slog.String("batch_id", batchID))
		return nil, err
	}
	members, err := s.repos.JournalRepo.FindJournalsByBatchID(ctx, companyID, batchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load batch journals", slog.String("batch_id", batchID))
		return nil, err
	}
	b.Journals = members
	return b, nil
}

func (s *batchService) ListBatches(ctx context.Context, companyID string, params dto.ListBatchesParams) ([]domain.Batch, error) {
	var status *domain.BatchStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.BatchStatus(*params.Status)
		status = &st
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	batches, err := s.repos.BatchRepo.ListBatches(ctx, companyID, status, pagination.ClampLimit(params.Limit), offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list batches", slog.String("company_id", companyID))
		return nil, err
	}
	return batches, nil
}

func (s *batchService) CreateBatch(ctx context.Context, companyID string, req dto.CreateBatchRequest, userID string) (*domain.Batch, error) {
	var result *domain.Batch
	resync := func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now); err != nil {
			return err
		}
		return repos.SettingsRepo.ResyncBatchNumber(ctx, companyID)
	}
	err := s.withSequenceRetry(ctx, s.repos.TxManager, func(ctx context.Context, repos portsrepo.Repositories) error {
		now := s.Now()
		if _, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now); err != nil {
			return err
		}
		number, err := repos.SettingsRepo.AllocateBatchNumber(ctx, companyID)
		if err != nil {
			return err
		}
		b := domain.Batch{
			BatchID:      uuid.NewString(),
			CompanyID:    companyID,
			BatchNumber:  number,
			BatchName:    req.BatchName,
			Description:  req.Description,
			Status:       domain.BatchDraft,
			TotalDebits:  decimal.Zero,
			TotalCredits: decimal.Zero,
			AuditFields:  domain.NewAuditFields(userID, now),
		}
		if err := repos.BatchRepo.SaveBatch(ctx, b); err != nil {
			return err
		}
		result = &b
		return nil
	}, resync)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create batch", slog.String("company_id", companyID))
		return nil, err
	}
	s.LogInfo(ctx, "Batch created", slog.String("batch_id", result.BatchID), slog.Int64("batch_number", result.BatchNumber))
	return result, nil
}

// inBatchTx loads the batch under lock and hands it to fn inside one write transaction.
func (s *batchService) inBatchTx(ctx context.Context, companyID, batchID, action string, fn func(ctx context.Context, repos portsrepo.Repositories, b *domain.Batch, now time.Time) error) (*domain.Batch, error) {
	var result *domain.Batch
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		b, err := loadBatch(ctx, repos.BatchRepo, companyID, batchID, true)
		if err != nil {
			return err
		}
		if err := fn(ctx, repos, b, s.Now()); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Batch operation failed",
			slog.String("batch_id", batchID),
			slog.String("action", action))
		return nil, err
	}
	s.LogInfo(ctx, "Batch updated",
		slog.String("batch_id", batchID),
		slog.String("action", action),
		slog.String("status", string(result.Status)))
	return result, nil
}

func (s *batchService) AddJournalToBatch(ctx context.Context, companyID string, batchID string, journalID string, userID string) (*domain.Batch, error) {
	return s.inBatchTx(ctx, companyID, batchID, "add_journal", func(ctx context.Context, repos portsrepo.Repositories, b *domain.Batch, now time.Time) error {
		if b.Status != domain.BatchDraft {
			return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, b.BatchID, "journals can only be added to a DRAFT batch, batch is %s", b.Status)
		}
		j, err := loadJournal(ctx, repos.JournalRepo, companyID, journalID, true)
		if err != nil {
			return err
		}
		if j.Status != domain.JournalDraft {
			return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, j.JournalID, "only DRAFT journals can join a batch, journal is %s", j.Status)
		}
		if j.InBatch() {
			if *j.BatchID == b.BatchID {
				return nil
			}
			return apperrors.NewLedgerError(apperrors.ErrValidation, j.JournalID, "journal already belongs to batch %s", *j.BatchID)
		}

		j.BatchID = &b.BatchID
		j.Touch(userID, now)
		if err := repos.JournalRepo.UpdateJournal(ctx, *j); err != nil {
			return err
		}
		return refreshBatchAggregates(ctx, repos, b, userID, now)
	})
}

func (s *batchService) RemoveJournalFromBatch(ctx context.Context, companyID string, batchID string, journalID string, userID string) (*domain.Batch, error) {
	return s.inBatchTx(ctx, companyID, batchID, "remove_journal", func(ctx context.Context, repos portsrepo.Repositories, b *domain.Batch, now time.Time) error {
		if b.Status != domain.BatchDraft {
			return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, b.BatchID, "journals can only be removed from a DRAFT batch, batch is %s", b.Status)
		}
		j, err := loadJournal(ctx, repos.JournalRepo, companyID, journalID, true)
		if err != nil {
			return err
		}
		if !j.InBatch() || *j.BatchID != b.BatchID {
			return apperrors.NewLedgerError(apperrors.ErrNotFound, j.JournalID, "journal is not in batch %s", b.BatchID)
		}

		j.BatchID = nil
		j.Touch(userID, now)
		if err := repos.JournalRepo.UpdateJournal(ctx, *j); err != nil {
			return err
		}
		return refreshBatchAggregates(ctx, repos, b, userID, now)
	})
}

func (s *batchService) MarkReady(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error) {
	return s.inBatchTx(ctx, companyID, batchID, "mark_ready", func(ctx context.Context, repos portsrepo.Repositories, b *domain.Batch, now time.Time) error {
		if !b.Status.CanTransitionTo(domain.BatchReady) {
			return transitionError(b, domain.BatchReady)
		}
		members, err := repos.JournalRepo.FindJournalsByBatchID(ctx, companyID, b.BatchID)
		if err != nil {
			return err
		}
		if len(members) == 0 {
			return apperrors.NewLedgerError(apperrors.ErrEmptyBatch, b.BatchID, "")
		}
		var unbalanced []string
		for _, j := range members {
			if !j.IsBalanced {
				unbalanced = append(unbalanced, j.JournalID)
			}
		}
		if len(unbalanced) > 0 {
			return &apperrors.LedgerError{
				Kind:     apperrors.ErrBatchHasUnbalancedJournals,
				EntityID: b.BatchID,
				Detail:   "every journal must balance before review",
				Related:  unbalanced,
			}
		}

		settings, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now)
		if err != nil {
			return err
		}
		b.RecomputeAggregates(members)
		b.Status = domain.BatchReady
		if settings.RequireBatchApproval {
			b.ReviewedBy = &userID
			b.ReviewedAt = &now
		}
		b.Touch(userID, now)
		return repos.BatchRepo.UpdateBatch(ctx, *b)
	})
}

// PostBatch posts every Draft member journal and the batch itself in one
// transaction. Any failing journal rolls the whole batch back.
func (s *batchService) PostBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error) {
	return s.inBatchTx(ctx, companyID, batchID, "post", func(ctx context.Context, repos portsrepo.Repositories, b *domain.Batch, now time.Time) error {
		if !b.Status.CanTransitionTo(domain.BatchPosted) {
			return transitionError(b, domain.BatchPosted)
		}
		settings, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now)
		if err != nil {
			return err
		}
		if settings.RequireBatchApproval && b.ReviewedBy == nil {
			return apperrors.NewLedgerError(apperrors.ErrBatchApprovalRequired, b.BatchID, "batch has not been reviewed")
		}

		members, err := repos.JournalRepo.FindJournalsByBatchID(ctx, companyID, b.BatchID)
		if err != nil {
			return err
		}
		for _, member := range members {
			if member.Status != domain.JournalDraft {
				continue
			}
			j, err := loadJournal(ctx, repos.JournalRepo, companyID, member.JournalID, true)
			if err != nil {
				return err
			}
			if err := postJournal(ctx, repos.JournalRepo, j, settings, userID, now); err != nil {
				return err
			}
		}

		b.RecomputeAggregates(members)
		b.Status = domain.BatchPosted
		b.PostedBy = &userID
		b.PostedAt = &now
		b.Touch(userID, now)
		return repos.BatchRepo.UpdateBatch(ctx, *b)
	})
}

// CancelBatch releases the batch's journals; the aggregates keep describing
// what the batch held when it was cancelled.
func (s *batchService) CancelBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error) {
	return s.inBatchTx(ctx, companyID, batchID, "cancel", func(ctx context.Context, repos portsrepo.Repositories, b *domain.Batch, now time.Time) error {
		if !b.Status.CanTransitionTo(domain.BatchCancelled) {
			return transitionError(b, domain.BatchCancelled)
		}
		if err := repos.JournalRepo.ReleaseBatchJournals(ctx, companyID, b.BatchID, userID); err != nil {
			return err
		}
		b.Status = domain.BatchCancelled
		b.Touch(userID, now)
		return repos.BatchRepo.UpdateBatch(ctx, *b)
	})
}
