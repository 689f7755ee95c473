package repositories

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// BatchReader defines read operations for batches
type BatchReader interface {
	// FindBatchByID retrieves a batch header.
	FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.Batch, error)

	// FindBatchByIDForUpdate is FindBatchByID that also locks the batch row.
	FindBatchByIDForUpdate(ctx context.Context, companyID, batchID string) (*domain.Batch, error)

	// ListBatches retrieves batches newest first, optionally filtered by status.
	ListBatches(ctx context.Context, companyID string, status *domain.BatchStatus, limit int, offset int) ([]domain.Batch, error)
}

// BatchWriter defines write operations for batches
type BatchWriter interface {
	// SaveBatch persists a new batch.
	SaveBatch(ctx context.Context, batch domain.Batch) error

	// UpdateBatch updates status, aggregates and review/post stamps.
	UpdateBatch(ctx context.Context, batch domain.Batch) error
}

// BatchRepositoryFacade combines all batch-related repository interfaces
type BatchRepositoryFacade interface {
	BatchReader
	BatchWriter
}
