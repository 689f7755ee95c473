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

const accountMappingColumns = `mapping_id, company_id, gl_account_name, gl_field_type, chart_account_id,
		created_at, created_by, last_updated_at, last_updated_by`

// PgxMappingRepository implements portsrepo.MappingRepositoryFacade using pgx.
type PgxMappingRepository struct {
	BaseRepository
}

func newPgxMappingRepository(db querier) portsrepo.MappingRepositoryFacade {
	return &PgxMappingRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.MappingRepositoryFacade = (*PgxMappingRepository)(nil)

// FindMappingByID retrieves a mapping.
func (r *PgxMappingRepository) FindMappingByID(ctx context.Context, companyID, mappingID string) (*domain.AccountMapping, error) {
	query := `SELECT ` + accountMappingColumns + ` FROM account_mappings WHERE company_id = $1 AND mapping_id = $2;`
	rows, err := r.DB.Query(ctx, query, companyID, mappingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mapping "+mappingID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountMapping])
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to find mapping by ID "+mappingID)
	}
	d := mapping.ToDomainAccountMapping(m)
	return &d, nil
}

// ListMappings retrieves every mapping of a company ordered by field type then label.
func (r *PgxMappingRepository) ListMappings(ctx context.Context, companyID string) ([]domain.AccountMapping, error) {
	query := `SELECT ` + accountMappingColumns + ` FROM account_mappings
		WHERE company_id = $1
		ORDER BY gl_field_type, gl_account_name;`
	rows, err := r.DB.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mappings", err)
	}
	modelMappings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountMapping])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan mappings", err)
	}
	return mapping.ToDomainAccountMappingSlice(modelMappings), nil
}

// UpsertMapping inserts a mapping or repoints the one holding the same key.
// The existing row keeps its id and creation stamps.
func (r *PgxMappingRepository) UpsertMapping(ctx context.Context, accountMapping domain.AccountMapping) (*domain.AccountMapping, error) {
	m := mapping.ToModelAccountMapping(accountMapping)
	query := `
		INSERT INTO account_mappings (` + accountMappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, gl_account_name, gl_field_type) DO UPDATE SET
			chart_account_id = EXCLUDED.chart_account_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + accountMappingColumns + `;
	`
	rows, err := r.DB.Query(ctx, query,
		m.MappingID, m.CompanyID, m.GLAccountName, m.GLFieldType, m.ChartAccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert mapping", err)
	}
	stored, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountMapping])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert mapping", err)
	}
	d := mapping.ToDomainAccountMapping(stored)
	return &d, nil
}

// DeleteMapping removes a mapping.
func (r *PgxMappingRepository) DeleteMapping(ctx context.Context, companyID, mappingID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM account_mappings WHERE company_id = $1 AND mapping_id = $2;`, companyID, mappingID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete mapping %s", mappingID), err)
	}
	return expectOneRow(tag, "mapping", mappingID)
}
