package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/go-playground/validator/v10"
)

type settingsService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	validate *validator.Validate
}

// NewSettingsService creates the period lock / settings manager.
func NewSettingsService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.SettingsSvcFacade {
	return &settingsService{
		BaseService: newBase(opts),
		repos:       repos,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// ensureSettings returns the company's settings, inserting defaults on first use.
func ensureSettings(ctx context.Context, repo portsrepo.SettingsRepositoryFacade, companyID, userID string, now func() time.Time) (*domain.GLSettings, error) {
	return repo.EnsureSettings(ctx, domain.DefaultGLSettings(companyID, userID, now()))
}

func (s *settingsService) GetSettings(ctx context.Context, companyID string, userID string) (*domain.GLSettings, error) {
	settings, err := ensureSettings(ctx, s.repos.SettingsRepo, companyID, userID, s.Now)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger settings", slog.String("company_id", companyID))
		return nil, apperrors.NewAppError(500, "failed to load ledger settings", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, companyID string, req dto.UpdateSettingsRequest, userID string) (*domain.GLSettings, error) {
	var rules map[string]domain.PostingRule
	if len(req.DefaultPostingRules) > 0 {
		parsed, err := s.parsePostingRules(req.DefaultPostingRules)
		if err != nil {
			s.LogDebug(ctx, "Rejected posting rules", slog.String("reason", err.Error()))
			return nil, err
		}
		rules = parsed
	}

	var updated *domain.GLSettings
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := ensureSettings(ctx, repos.SettingsRepo, companyID, userID, s.Now); err != nil {
			return err
		}
		current, err := repos.SettingsRepo.FindSettingsForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		next := *current

		if req.AutoJournalNumberPrefix != nil {
			next.AutoJournalNumberPrefix = *req.AutoJournalNumberPrefix
		}
		if req.NextJournalNumber != nil {
			if *req.NextJournalNumber < current.NextJournalNumber {
				return fmt.Errorf("%w: next_journal_number cannot move backwards from %d to %d",
					apperrors.ErrValidation, current.NextJournalNumber, *req.NextJournalNumber)
			}
			next.NextJournalNumber = *req.NextJournalNumber
		}
		if req.CurrentPeriodOpen != nil {
			d := domain.DateOnly(*req.CurrentPeriodOpen)
			next.CurrentPeriodOpen = &d
		}
		if req.NextPeriodOpen != nil {
			d := domain.DateOnly(*req.NextPeriodOpen)
			next.NextPeriodOpen = &d
		}
		if next.CurrentPeriodOpen != nil && next.NextPeriodOpen != nil &&
			!next.NextPeriodOpen.After(*next.CurrentPeriodOpen) {
			return fmt.Errorf("%w: next_period_open must be after current_period_open", apperrors.ErrValidation)
		}
		if req.AllowFuturePosting != nil {
			next.AllowFuturePosting = *req.AllowFuturePosting
		}
		if req.RequireBatchApproval != nil {
			next.RequireBatchApproval = *req.RequireBatchApproval
		}
		if req.LockPostedEntries != nil {
			next.LockPostedEntries = *req.LockPostedEntries
		}
		if rules != nil {
			if err := checkRuleAccounts(ctx, repos.AccountRepo, companyID, rules); err != nil {
				return err
			}
			next.DefaultPostingRules = rules
		}
		next.Touch(userID, s.Now())

		if err := repos.SettingsRepo.UpdateSettings(ctx, next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update ledger settings", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger settings updated", slog.String("company_id", companyID), slog.String("user_id", userID))
	return updated, nil
}

// parsePostingRules decodes a JSON object of posting rules, rejecting unknown fields.
func (s *settingsService) parsePostingRules(raw json.RawMessage) (map[string]domain.PostingRule, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var rules map[string]domain.PostingRule
	if err := dec.Decode(&rules); err != nil {
		return nil, fmt.Errorf("%w: default_posting_rules: %v", apperrors.ErrValidation, err)
	}
	if rules == nil {
		rules = map[string]domain.PostingRule{}
	}
	for key, rule := range rules {
		if key == "" {
			return nil, fmt.Errorf("%w: default_posting_rules: empty key", apperrors.ErrValidation)
		}
		if err := s.validate.Struct(rule); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return nil, fmt.Errorf("%w: default_posting_rules[%s].%s failed on %q",
					apperrors.ErrValidation, key, verrs[0].Field(), verrs[0].Tag())
			}
			return nil, fmt.Errorf("%w: default_posting_rules[%s]: %v", apperrors.ErrValidation, key, err)
		}
	}
	return rules, nil
}

// checkRuleAccounts verifies every rule points at an account of the company.
func checkRuleAccounts(ctx context.Context, repo portsrepo.AccountReader, companyID string, rules map[string]domain.PostingRule) error {
	for key, rule := range rules {
		var err error
		if rule.AccountID != "" {
			_, err = repo.FindAccountByID(ctx, companyID, rule.AccountID)
		} else {
			_, err = repo.FindAccountByNumber(ctx, companyID, rule.AccountNumber)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: default_posting_rules[%s] references an unknown account", apperrors.ErrValidation, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
