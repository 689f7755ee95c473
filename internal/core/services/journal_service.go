package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/SscSPs/gl_backend/internal/utils/accounting"
	"github.com/SscSPs/gl_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

type journalService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewJournalService creates the journal entry engine.
func NewJournalService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBase(opts),
		repos:       repos,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) GetJournalByID(ctx context.Context, companyID string, journalID string) (*domain.Journal, error) {
	journal, err := loadJournal(ctx, s.repos.JournalRepo, companyID, journalID, false)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get journal", slog.String("journal_id", journalID))
		return nil, err
	}
	return journal, nil
}

func (s *journalService) ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) ([]domain.Journal, *string, error) {
	var filter portsrepo.JournalFilter
	if params.Status != nil && *params.Status != "" {
		status := domain.JournalStatus(*params.Status)
		filter.Status = &status
	}
	if params.BatchID != nil && *params.BatchID != "" {
		filter.BatchID = params.BatchID
	}

	journals, next, err := s.repos.JournalRepo.ListJournals(ctx, companyID, filter, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list journals", slog.String("company_id", companyID))
		return nil, nil, err
	}
	return journals, next, nil
}

func (s *journalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: unknown journal source %q", apperrors.ErrValidation, source)
	}

	now := s.Now()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		CompanyID:   companyID,
		JournalDate: domain.DateOnly(req.JournalDate),
		Memo:        req.Memo,
		Source:      source,
		SourceID:    req.SourceID,
		Status:      domain.JournalDraft,
		AuditFields: domain.NewAuditFields(userID, now),
		Lines:       newLines(req.Lines),
	}
	journal.Renumber()
	journal.RecomputeTotals()

	if err := accounting.ValidateEntryLines(journal.JournalID, journal.Lines); err != nil {
		s.LogDebug(ctx, "Rejected journal lines", slog.String("reason", err.Error()))
		return nil, err
	}

	err := s.withNumberRetry(ctx, companyID, userID, func(ctx context.Context, repos portsrepo.Repositories) error {
		return insertJournal(ctx, repos, &journal, userID, now, true)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create journal", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber),
		slog.Bool("is_balanced", journal.IsBalanced))
	return &journal, nil
}

// withNumberRetry runs fn in a write transaction. When the allocated journal
// number turns out to be taken, the counter is moved past the stored journals
// before the next attempt.
func (s *journalService) withNumberRetry(ctx context.Context, companyID, userID string, fn portsrepo.TxFunc) error {
	return s.withSequenceRetry(ctx, s.repos.TxManager, fn, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now); err != nil {
			return err
		}
		return repos.SettingsRepo.ResyncJournalNumber(ctx, companyID)
	})
}

func newLines(reqs []dto.EntryLineRequest) []domain.EntryLine {
	lines := dto.ToDomainLines(reqs)
	for i := range lines {
		lines[i].LineID = uuid.NewString()
	}
	return lines
}

// insertJournal checks the line accounts, allocates the next journal number and stores j.
func insertJournal(ctx context.Context, repos portsrepo.Repositories, j *domain.Journal, userID string, now time.Time, requireActive bool) error {
	if err := checkLineAccounts(ctx, repos.AccountRepo, j, nil, requireActive); err != nil {
		return err
	}
	if _, err := repos.SettingsRepo.EnsureSettings(ctx, domain.DefaultGLSettings(j.CompanyID, userID, now)); err != nil {
		return err
	}
	seq, prefix, err := repos.SettingsRepo.AllocateJournalNumber(ctx, j.CompanyID)
	if err != nil {
		return err
	}
	j.JournalSequence = seq
	j.JournalNumber = domain.FormatJournalNumber(prefix, seq)
	return repos.JournalRepo.SaveJournal(ctx, *j)
}

// checkLineAccounts verifies that every line books to an account of the
// journal's company. Accounts in known are exempt from the active check.
func checkLineAccounts(ctx context.Context, repo portsrepo.AccountReader, j *domain.Journal, known map[string]bool, requireActive bool) error {
	ids := make([]string, 0, len(j.Lines))
	seen := make(map[string]bool, len(j.Lines))
	for _, l := range j.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := repo.FindAccountsByIDs(ctx, j.CompanyID, ids)
	if err != nil {
		return err
	}
	for _, l := range j.Lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return apperrors.NewLedgerError(apperrors.ErrNotFound, l.AccountID, "account on line %d not found", l.LineNumber)
		}
		if requireActive && !acc.IsActive && !known[l.AccountID] {
			return apperrors.NewLedgerError(apperrors.ErrValidation, l.AccountID, "account on line %d is inactive", l.LineNumber)
		}
	}
	return nil
}

func loadJournal(ctx context.Context, repo portsrepo.JournalReader, companyID, journalID string, forUpdate bool) (*domain.Journal, error) {
	var (
		j   *domain.Journal
		err error
	)
	if forUpdate {
		j, err = repo.FindJournalByIDForUpdate(ctx, companyID, journalID)
	} else {
		j, err = repo.FindJournalByID(ctx, companyID, journalID)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewLedgerError(apperrors.ErrNotFound, journalID, "journal not found")
	}
	return j, err
}

func (s *journalService) UpdateJournal(ctx context.Context, companyID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	return s.editJournal(ctx, companyID, journalID, userID, "update", func(j *domain.Journal) error {
		if req.JournalDate != nil {
			j.JournalDate = domain.DateOnly(*req.JournalDate)
		}
		if req.Memo != nil {
			j.Memo = *req.Memo
		}
		if req.Lines != nil {
			j.Lines = newLines(req.Lines)
		}
		return nil
	})
}

func (s *journalService) AddLine(ctx context.Context, companyID string, journalID string, req dto.EntryLineRequest, userID string) (*domain.Journal, error) {
	return s.editJournal(ctx, companyID, journalID, userID, "add_line", func(j *domain.Journal) error {
		line := req.ToDomainLine()
		line.LineID = uuid.NewString()
		j.Lines = append(j.Lines, line)
		return nil
	})
}

func (s *journalService) DeleteLine(ctx context.Context, companyID string, journalID string, lineID string, userID string) (*domain.Journal, error) {
	return s.editJournal(ctx, companyID, journalID, userID, "delete_line", func(j *domain.Journal) error {
		idx := -1
		for i, l := range j.Lines {
			if l.LineID == lineID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NewLedgerError(apperrors.ErrNotFound, lineID, "line not found on journal %s", j.JournalID)
		}
		if len(j.Lines)-1 < domain.MinJournalLines {
			return apperrors.NewLedgerError(apperrors.ErrInvalidJournalStructure, j.JournalID,
				"journal must keep at least %d lines", domain.MinJournalLines)
		}
		j.Lines = append(j.Lines[:idx:idx], j.Lines[idx+1:]...)
		return nil
	})
}

// editJournal loads a journal under lock, applies mutate and re-validates it
// under the same rules for every kind of edit.
func (s *journalService) editJournal(ctx context.Context, companyID, journalID, userID, action string, mutate func(j *domain.Journal) error) (*domain.Journal, error) {
	var result *domain.Journal
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		now := s.Now()
		j, err := loadJournal(ctx, repos.JournalRepo, companyID, journalID, true)
		if err != nil {
			return err
		}
		settings, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now)
		if err != nil {
			return err
		}
		batch, err := batchOf(ctx, repos.BatchRepo, j)
		if err != nil {
			return err
		}
		if err := checkEditable(j, settings, batch); err != nil {
			return err
		}

		known := make(map[string]bool, len(j.Lines))
		for _, l := range j.Lines {
			known[l.AccountID] = true
		}
		originalDate := j.JournalDate

		if err := mutate(j); err != nil {
			return err
		}
		j.Renumber()
		j.RecomputeTotals()
		if err := accounting.ValidateEntryLines(j.JournalID, j.Lines); err != nil {
			return err
		}
		if err := checkLineAccounts(ctx, repos.AccountRepo, j, known, true); err != nil {
			return err
		}

		if j.Status == domain.JournalPosted {
			if !j.IsBalanced {
				return apperrors.NewLedgerError(apperrors.ErrUnbalancedJournal, j.JournalID,
					"posted journal would have debits %s and credits %s", j.TotalDebits, j.TotalCredits)
			}
			for _, d := range []time.Time{originalDate, j.JournalDate} {
				if reason := settings.PostingDateViolation(d, now); reason != "" {
					return apperrors.NewLedgerError(apperrors.ErrPeriodClosed, j.JournalID, "%s", reason)
				}
			}
		}

		j.Touch(userID, now)
		if err := repos.JournalRepo.UpdateJournal(ctx, *j); err != nil {
			return err
		}
		if err := repos.JournalRepo.ReplaceJournalLines(ctx, *j); err != nil {
			return err
		}
		if batch != nil {
			if err := refreshBatchAggregates(ctx, repos, batch, userID, now); err != nil {
				return err
			}
		}
		result = j
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to edit journal",
			slog.String("journal_id", journalID),
			slog.String("action", action))
		return nil, err
	}
	s.LogInfo(ctx, "Journal edited", slog.String("journal_id", journalID), slog.String("action", action))
	return result, nil
}

// batchOf returns the locked batch of j, or nil when j is not in a batch.
func batchOf(ctx context.Context, repo portsrepo.BatchReader, j *domain.Journal) (*domain.Batch, error) {
	if !j.InBatch() {
		return nil, nil
	}
	return repo.FindBatchByIDForUpdate(ctx, j.CompanyID, *j.BatchID)
}

func checkEditable(j *domain.Journal, settings *domain.GLSettings, batch *domain.Batch) error {
	switch {
	case j.Status == domain.JournalCancelled:
		return apperrors.NewLedgerError(apperrors.ErrJournalLocked, j.JournalID, "journal is cancelled")
	case j.Status == domain.JournalPosted && settings.LockPostedEntries:
		return apperrors.NewLedgerError(apperrors.ErrJournalLocked, j.JournalID, "posted entries are locked")
	case batch != nil && batch.Status != domain.BatchDraft:
		return apperrors.NewLedgerError(apperrors.ErrJournalLocked, j.JournalID, "batch %s is %s", batch.BatchID, batch.Status)
	}
	return nil
}

func (s *journalService) PostJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error) {
	var result *domain.Journal
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		j, err := loadJournal(ctx, repos.JournalRepo, companyID, journalID, true)
		if err != nil {
			return err
		}
		settings, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now)
		if err != nil {
			return err
		}
		if j.InBatch() && settings.RequireBatchApproval {
			return apperrors.NewLedgerError(apperrors.ErrBatchApprovalRequired, j.JournalID,
				"journal belongs to batch %s and must be posted through it", *j.BatchID)
		}
		if err := postJournal(ctx, repos.JournalRepo, j, settings, userID, s.Now()); err != nil {
			return err
		}
		result = j
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to post journal", slog.String("journal_id", journalID))
		return nil, err
	}
	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journalID),
		slog.String("journal_number", result.JournalNumber))
	return result, nil
}

// postJournal moves a Draft journal to Posted after the balance and period checks.
func postJournal(ctx context.Context, repo portsrepo.JournalWriter, j *domain.Journal, settings *domain.GLSettings, userID string, now time.Time) error {
	if !j.Status.CanTransitionTo(domain.JournalPosted) {
		return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, j.JournalID, "cannot post a %s journal", j.Status)
	}
	if len(j.Lines) > 0 {
		j.RecomputeTotals()
	}
	if !j.IsBalanced {
		return apperrors.NewLedgerError(apperrors.ErrUnbalancedJournal, j.JournalID,
			"debits %s, credits %s", j.TotalDebits, j.TotalCredits)
	}
	if reason := settings.PostingDateViolation(j.JournalDate, now); reason != "" {
		return apperrors.NewLedgerError(apperrors.ErrPeriodClosed, j.JournalID, "%s", reason)
	}

	j.Status = domain.JournalPosted
	j.PostedAt = &now
	j.PostedBy = &userID
	j.Touch(userID, now)
	return repo.UpdateJournal(ctx, *j)
}

func (s *journalService) CancelJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error) {
	var result *domain.Journal
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		now := s.Now()
		j, err := loadJournal(ctx, repos.JournalRepo, companyID, journalID, true)
		if err != nil {
			return err
		}
		if !j.Status.CanTransitionTo(domain.JournalCancelled) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, j.JournalID, "cannot cancel a %s journal", j.Status)
		}
		batch, err := batchOf(ctx, repos.BatchRepo, j)
		if err != nil {
			return err
		}
		if batch != nil {
			if batch.Status != domain.BatchDraft {
				return apperrors.NewLedgerError(apperrors.ErrJournalLocked, j.JournalID, "batch %s is %s", batch.BatchID, batch.Status)
			}
			j.BatchID = nil
		}

		j.Status = domain.JournalCancelled
		j.Touch(userID, now)
		if err := repos.JournalRepo.UpdateJournal(ctx, *j); err != nil {
			return err
		}
		if batch != nil {
			if err := refreshBatchAggregates(ctx, repos, batch, userID, now); err != nil {
				return err
			}
		}
		result = j
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to cancel journal", slog.String("journal_id", journalID))
		return nil, err
	}
	s.LogInfo(ctx, "Journal cancelled", slog.String("journal_id", journalID))
	return result, nil
}

func (s *journalService) ReverseJournal(ctx context.Context, companyID string, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.Journal, error) {
	var reversal *domain.Journal
	err := s.withNumberRetry(ctx, companyID, userID, func(ctx context.Context, repos portsrepo.Repositories) error {
		now := s.Now()
		orig, err := loadJournal(ctx, repos.JournalRepo, companyID, journalID, true)
		if err != nil {
			return err
		}
		switch {
		case orig.Status != domain.JournalPosted:
			return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, orig.JournalID, "only posted journals can be reversed")
		case orig.ReversingJournalID != nil:
			return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, orig.JournalID, "already reversed by %s", *orig.ReversingJournalID)
		case orig.OriginalJournalID != nil:
			return apperrors.NewLedgerError(apperrors.ErrInvalidStateTransition, orig.JournalID, "journal is itself a reversal")
		}
		settings, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now)
		if err != nil {
			return err
		}

		rev := buildReversal(orig, req, userID, now)
		if err := insertJournal(ctx, repos, rev, userID, now, false); err != nil {
			return err
		}
		if err := postJournal(ctx, repos.JournalRepo, rev, settings, userID, now); err != nil {
			return err
		}

		orig.ReversingJournalID = &rev.JournalID
		orig.Touch(userID, now)
		if err := repos.JournalRepo.UpdateJournal(ctx, *orig); err != nil {
			return err
		}
		reversal = rev
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to reverse journal", slog.String("journal_id", journalID))
		return nil, err
	}
	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversal_id", reversal.JournalID))
	return reversal, nil
}

func buildReversal(orig *domain.Journal, req dto.ReverseJournalRequest, userID string, now time.Time) *domain.Journal {
	date := domain.DateOnly(now)
	if req.JournalDate != nil {
		date = domain.DateOnly(*req.JournalDate)
	}
	memo := "Reversal of " + orig.JournalNumber
	if req.Memo != nil {
		memo = *req.Memo
	}
	origID := orig.JournalID

	rev := &domain.Journal{
		JournalID:         uuid.NewString(),
		CompanyID:         orig.CompanyID,
		JournalDate:       date,
		Memo:              memo,
		Source:            domain.SourceAdjustment,
		SourceID:          &origID,
		Status:            domain.JournalDraft,
		OriginalJournalID: &origID,
		AuditFields:       domain.NewAuditFields(userID, now),
		Lines:             make([]domain.EntryLine, len(orig.Lines)),
	}
	for i, l := range orig.Lines {
		flipped := l.Flip()
		flipped.LineID = uuid.NewString()
		rev.Lines[i] = flipped
	}
	rev.Renumber()
	rev.RecomputeTotals()
	return rev
}
