package memory

import (
	"context"
	"maps"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
)

type settingsRepository struct {
	a access
}

var _ portsrepo.SettingsRepositoryFacade = (*settingsRepository)(nil)

func copySettings(s domain.GLSettings) *domain.GLSettings {
	s.DefaultPostingRules = maps.Clone(s.DefaultPostingRules)
	return &s
}

func (r *settingsRepository) EnsureSettings(_ context.Context, defaults domain.GLSettings) (*domain.GLSettings, error) {
	var result *domain.GLSettings
	err := r.a.write(func(st *state) error {
		s, ok := st.settings[defaults.CompanyID]
		if !ok {
			s = *copySettings(defaults)
			st.settings[defaults.CompanyID] = s
		}
		result = copySettings(s)
		return nil
	})
	return result, err
}

func (r *settingsRepository) FindSettings(_ context.Context, companyID string) (*domain.GLSettings, error) {
	var result *domain.GLSettings
	r.a.read(func(st *state) {
		if s, ok := st.settings[companyID]; ok {
			result = copySettings(s)
		}
	})
	if result == nil {
		return nil, apperrors.ErrNotFound
	}
	return result, nil
}

func (r *settingsRepository) FindSettingsForUpdate(ctx context.Context, companyID string) (*domain.GLSettings, error) {
	return r.FindSettings(ctx, companyID)
}

func (r *settingsRepository) UpdateSettings(_ context.Context, settings domain.GLSettings) error {
	return r.a.write(func(st *state) error {
		existing, ok := st.settings[settings.CompanyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		next := *copySettings(settings)
		next.NextBatchNumber = existing.NextBatchNumber
		next.NextJournalNumber = max(existing.NextJournalNumber, settings.NextJournalNumber)
		st.settings[settings.CompanyID] = next
		return nil
	})
}

func (r *settingsRepository) AllocateJournalNumber(_ context.Context, companyID string) (int64, string, error) {
	var seq int64
	var prefix string
	err := r.a.write(func(st *state) error {
		s, ok := st.settings[companyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		seq, prefix = s.NextJournalNumber, s.AutoJournalNumberPrefix
		s.NextJournalNumber++
		st.settings[companyID] = s
		return nil
	})
	return seq, prefix, err
}

func (r *settingsRepository) AllocateBatchNumber(_ context.Context, companyID string) (int64, error) {
	var seq int64
	err := r.a.write(func(st *state) error {
		s, ok := st.settings[companyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		seq = s.NextBatchNumber
		s.NextBatchNumber++
		st.settings[companyID] = s
		return nil
	})
	return seq, err
}

func (r *settingsRepository) ResyncJournalNumber(_ context.Context, companyID string) error {
	return r.a.write(func(st *state) error {
		s, ok := st.settings[companyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		for _, j := range st.journals {
			if j.CompanyID == companyID && j.JournalSequence >= s.NextJournalNumber {
				s.NextJournalNumber = j.JournalSequence + 1
			}
		}
		st.settings[companyID] = s
		return nil
	})
}

func (r *settingsRepository) ResyncBatchNumber(_ context.Context, companyID string) error {
	return r.a.write(func(st *state) error {
		s, ok := st.settings[companyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		for _, b := range st.batches {
			if b.CompanyID == companyID && b.BatchNumber >= s.NextBatchNumber {
				s.NextBatchNumber = b.BatchNumber + 1
			}
		}
		st.settings[companyID] = s
		return nil
	})
}
