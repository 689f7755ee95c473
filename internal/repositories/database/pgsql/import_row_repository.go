package pgsql

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backend/internal/models"
	"github.com/SscSPs/gl_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

var importRowColumns = []string{
	"row_id", "company_id", "import_id", "row_number", "entry_date", "account_name", "split_account",
	"name", "entry_type", "amount", "balance", "description", "reference", "created_at", "created_by",
}

// PgxImportRowRepository implements portsrepo.ImportRowRepositoryFacade using pgx.
type PgxImportRowRepository struct {
	BaseRepository
}

func newPgxImportRowRepository(db querier) portsrepo.ImportRowRepositoryFacade {
	return &PgxImportRowRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ImportRowRepositoryFacade = (*PgxImportRowRepository)(nil)

// copier is implemented by both *pgxpool.Pool and pgx.Tx.
type copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// SaveImportRows bulk loads rows with COPY.
func (r *PgxImportRowRepository) SaveImportRows(ctx context.Context, rows []domain.ImportRow) error {
	if len(rows) == 0 {
		return nil
	}
	c, ok := r.DB.(copier)
	if !ok {
		return apperrors.NewAppError(500, "database handle does not support COPY", nil)
	}
	_, err := c.CopyFrom(ctx, pgx.Identifier{"gl_import_rows"}, importRowColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			m := mapping.ToModelImportRow(rows[i])
			return []any{
				m.RowID, m.CompanyID, m.ImportID, m.RowNumber, m.Date, m.AccountName, m.SplitAccount,
				m.Name, m.Type, m.Amount, m.Balance, m.Description, m.Reference, m.CreatedAt, m.CreatedBy,
			}, nil
		}))
	if err != nil {
		return apperrors.NewAppError(500, "failed to copy import rows", err)
	}
	return nil
}

// ListImportRows retrieves every imported row of a company in import order.
func (r *PgxImportRowRepository) ListImportRows(ctx context.Context, companyID string) ([]domain.ImportRow, error) {
	query := `
		SELECT row_id, company_id, import_id, row_number, entry_date, account_name, split_account,
		       name, entry_type, amount, balance, description, reference, created_at, created_by
		FROM gl_import_rows
		WHERE company_id = $1
		ORDER BY created_at, import_id, row_number;
	`
	rows, err := r.DB.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query import rows", err)
	}
	modelRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ImportRow])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan import rows", err)
	}
	return mapping.ToDomainImportRowSlice(modelRows), nil
}
