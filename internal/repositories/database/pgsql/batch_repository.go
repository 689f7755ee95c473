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

const batchNumberConstraint = "batches_company_id_batch_number_key"

const batchColumns = `batch_id, company_id, batch_number, batch_name, description, status,
		total_journals, total_debits, total_credits, reviewed_by, reviewed_at, posted_by, posted_at,
		created_at, created_by, last_updated_at, last_updated_by`

// PgxBatchRepository implements portsrepo.BatchRepositoryFacade using pgx.
type PgxBatchRepository struct {
	BaseRepository
}

func newPgxBatchRepository(db querier) portsrepo.BatchRepositoryFacade {
	return &PgxBatchRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.BatchRepositoryFacade = (*PgxBatchRepository)(nil)

func (r *PgxBatchRepository) findBatch(ctx context.Context, companyID, batchID string, forUpdate bool) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE company_id = $1 AND batch_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.DB.Query(ctx, query, companyID, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query batch "+batchID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Batch])
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to find batch by ID "+batchID)
	}
	batch := mapping.ToDomainBatch(m)
	return &batch, nil
}

// FindBatchByID retrieves a batch header.
func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.Batch, error) {
	return r.findBatch(ctx, companyID, batchID, false)
}

// FindBatchByIDForUpdate retrieves a batch header and locks its row.
func (r *PgxBatchRepository) FindBatchByIDForUpdate(ctx context.Context, companyID, batchID string) (*domain.Batch, error) {
	return r.findBatch(ctx, companyID, batchID, true)
}

// ListBatches retrieves batches newest first, optionally filtered by status.
func (r *PgxBatchRepository) ListBatches(ctx context.Context, companyID string, status *domain.BatchStatus, limit int, offset int) ([]domain.Batch, error) {
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	query := `SELECT ` + batchColumns + ` FROM batches
		WHERE company_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY batch_number DESC
		LIMIT $3 OFFSET $4;`
	rows, err := r.DB.Query(ctx, query, companyID, statusFilter, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query batches", err)
	}
	modelBatches, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Batch])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan batches", err)
	}
	return mapping.ToDomainBatchSlice(modelBatches), nil
}

// SaveBatch persists a new batch.
func (r *PgxBatchRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	m := mapping.ToModelBatch(batch)
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.DB.Exec(ctx, query,
		m.BatchID, m.CompanyID, m.BatchNumber, m.BatchName, m.Description, m.Status,
		m.TotalJournals, m.TotalDebits, m.TotalCredits, m.ReviewedBy, m.ReviewedAt, m.PostedBy, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, batchNumberConstraint) {
			return apperrors.NewLedgerError(apperrors.ErrDuplicateSequenceNumber, m.BatchID, "batch number %d", m.BatchNumber)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: batch %s already exists", apperrors.ErrDuplicate, m.BatchID)
		}
		return apperrors.NewAppError(500, "failed to insert batch "+m.BatchID, err)
	}
	return nil
}

// UpdateBatch updates status, aggregates and review/post stamps.
func (r *PgxBatchRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	m := mapping.ToModelBatch(batch)
	query := `
		UPDATE batches
		SET batch_name = $3, description = $4, status = $5, total_journals = $6,
		    total_debits = $7, total_credits = $8, reviewed_by = $9, reviewed_at = $10,
		    posted_by = $11, posted_at = $12, last_updated_at = $13, last_updated_by = $14
		WHERE company_id = $1 AND batch_id = $2;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.CompanyID, m.BatchID, m.BatchName, m.Description, m.Status, m.TotalJournals,
		m.TotalDebits, m.TotalCredits, m.ReviewedBy, m.ReviewedAt,
		m.PostedBy, m.PostedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update batch "+m.BatchID, err)
	}
	return expectOneRow(tag, "batch", m.BatchID)
}
