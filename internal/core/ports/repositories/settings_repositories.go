package repositories

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// SettingsRepositoryFacade stores per-company ledger settings and the sequence counters.
type SettingsRepositoryFacade interface {
	// EnsureSettings returns the company's settings, inserting defaults first if none exist.
	EnsureSettings(ctx context.Context, defaults domain.GLSettings) (*domain.GLSettings, error)

	// FindSettings retrieves the company's settings or apperrors.ErrNotFound.
	FindSettings(ctx context.Context, companyID string) (*domain.GLSettings, error)

	// FindSettingsForUpdate is FindSettings holding the row lock until the transaction ends.
	FindSettingsForUpdate(ctx context.Context, companyID string) (*domain.GLSettings, error)

	// UpdateSettings persists the editable settings fields. next_batch_number is
	// left alone and next_journal_number never moves backwards.
	UpdateSettings(ctx context.Context, settings domain.GLSettings) error

	// AllocateJournalNumber increments next_journal_number under a row lock and
	// returns the value it had together with the current prefix.
	AllocateJournalNumber(ctx context.Context, companyID string) (seq int64, prefix string, err error)

	// AllocateBatchNumber increments next_batch_number under a row lock and returns the value it had.
	AllocateBatchNumber(ctx context.Context, companyID string) (int64, error)

	// ResyncJournalNumber moves next_journal_number past the highest journal
	// sequence already stored for the company.
	ResyncJournalNumber(ctx context.Context, companyID string) error

	// ResyncBatchNumber moves next_batch_number past the highest stored batch number.
	ResyncBatchNumber(ctx context.Context, companyID string) error
}
