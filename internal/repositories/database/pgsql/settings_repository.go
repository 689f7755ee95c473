package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backend/internal/models"
	"github.com/SscSPs/gl_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const settingsColumns = `company_id, auto_journal_number_prefix, next_journal_number, next_batch_number,
		current_period_open, next_period_open, allow_future_posting, require_batch_approval,
		lock_posted_entries, default_posting_rules, created_at, created_by, last_updated_at, last_updated_by`

// PgxSettingsRepository implements portsrepo.SettingsRepositoryFacade using pgx.
type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db querier) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// EnsureSettings inserts defaults unless a row exists, then reads the stored row.
func (r *PgxSettingsRepository) EnsureSettings(ctx context.Context, defaults domain.GLSettings) (*domain.GLSettings, error) {
	m, err := mapping.ToModelGLSettings(defaults)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode settings", err)
	}
	query := `
		INSERT INTO gl_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (company_id) DO NOTHING;
	`
	_, err = r.DB.Exec(ctx, query,
		m.CompanyID, m.AutoJournalNumberPrefix, m.NextJournalNumber, m.NextBatchNumber,
		m.CurrentPeriodOpen, m.NextPeriodOpen, m.AllowFuturePosting, m.RequireBatchApproval,
		m.LockPostedEntries, m.DefaultPostingRules, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create settings for company "+m.CompanyID, err)
	}
	return r.FindSettings(ctx, defaults.CompanyID)
}

// FindSettings retrieves the company's settings or apperrors.ErrNotFound.
func (r *PgxSettingsRepository) FindSettings(ctx context.Context, companyID string) (*domain.GLSettings, error) {
	return r.findSettings(ctx, `SELECT `+settingsColumns+` FROM gl_settings WHERE company_id = $1;`, companyID)
}

// FindSettingsForUpdate locks the settings row until the surrounding transaction ends.
func (r *PgxSettingsRepository) FindSettingsForUpdate(ctx context.Context, companyID string) (*domain.GLSettings, error) {
	return r.findSettings(ctx, `SELECT `+settingsColumns+` FROM gl_settings WHERE company_id = $1 FOR UPDATE;`, companyID)
}

func (r *PgxSettingsRepository) findSettings(ctx context.Context, query, companyID string) (*domain.GLSettings, error) {
	rows, err := r.DB.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query settings", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.GLSettings])
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to find settings for company "+companyID)
	}
	settings, err := mapping.ToDomainGLSettings(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode settings", err)
	}
	return &settings, nil
}

// UpdateSettings persists the editable fields. The counters are owned by the
// allocation statements, so next_batch_number is untouched and
// next_journal_number can only grow.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings domain.GLSettings) error {
	m, err := mapping.ToModelGLSettings(settings)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode settings", err)
	}
	query := `
		UPDATE gl_settings
		SET auto_journal_number_prefix = $2, next_journal_number = GREATEST(next_journal_number, $3),
		    current_period_open = $4, next_period_open = $5, allow_future_posting = $6,
		    require_batch_approval = $7, lock_posted_entries = $8, default_posting_rules = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE company_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.CompanyID, m.AutoJournalNumberPrefix, m.NextJournalNumber,
		m.CurrentPeriodOpen, m.NextPeriodOpen, m.AllowFuturePosting,
		m.RequireBatchApproval, m.LockPostedEntries, m.DefaultPostingRules,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update settings for company "+m.CompanyID, err)
	}
	return expectOneRow(tag, "settings", m.CompanyID)
}

// AllocateJournalNumber increments the counter; the UPDATE holds the row lock until commit.
func (r *PgxSettingsRepository) AllocateJournalNumber(ctx context.Context, companyID string) (int64, string, error) {
	query := `
		UPDATE gl_settings
		SET next_journal_number = next_journal_number + 1
		WHERE company_id = $1
		RETURNING next_journal_number - 1, auto_journal_number_prefix;
	`
	var seq int64
	var prefix string
	if err := r.DB.QueryRow(ctx, query, companyID).Scan(&seq, &prefix); err != nil {
		return 0, "", notFoundOrInternal(err, fmt.Sprintf("failed to allocate journal number for company %s", companyID))
	}
	return seq, prefix, nil
}

// AllocateBatchNumber increments the batch counter and returns the value it had.
func (r *PgxSettingsRepository) AllocateBatchNumber(ctx context.Context, companyID string) (int64, error) {
	query := `
		UPDATE gl_settings
		SET next_batch_number = next_batch_number + 1
		WHERE company_id = $1
		RETURNING next_batch_number - 1;
	`
	var seq int64
	if err := r.DB.QueryRow(ctx, query, companyID).Scan(&seq); err != nil {
		return 0, notFoundOrInternal(err, fmt.Sprintf("failed to allocate batch number for company %s", companyID))
	}
	return seq, nil
}

// ResyncJournalNumber moves the journal counter past every stored sequence.
func (r *PgxSettingsRepository) ResyncJournalNumber(ctx context.Context, companyID string) error {
	query := `
		UPDATE gl_settings
		SET next_journal_number = GREATEST(next_journal_number,
		    (SELECT COALESCE(MAX(journal_sequence), 0) + 1 FROM journals WHERE company_id = $1))
		WHERE company_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to resync journal number for company "+companyID, err)
	}
	return expectOneRow(tag, "settings", companyID)
}

// ResyncBatchNumber moves the batch counter past every stored batch number.
func (r *PgxSettingsRepository) ResyncBatchNumber(ctx context.Context, companyID string) error {
	query := `
		UPDATE gl_settings
		SET next_batch_number = GREATEST(next_batch_number,
		    (SELECT COALESCE(MAX(batch_number), 0) + 1 FROM batches WHERE company_id = $1))
		WHERE company_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to resync batch number for company "+companyID, err)
	}
	return expectOneRow(tag, "settings", companyID)
}
