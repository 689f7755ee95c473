package services

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
)

// BatchReaderSvc defines read operations for batches
type BatchReaderSvc interface {
	// GetBatchByID retrieves a batch with its member journals.
	GetBatchByID(ctx context.Context, companyID string, batchID string) (*domain.Batch, error)

	// ListBatches retrieves a page of batches, newest first.
	ListBatches(ctx context.Context, companyID string, params dto.ListBatchesParams) ([]domain.Batch, error)
}

// BatchWorkflowSvc drives the batch state machine
type BatchWorkflowSvc interface {
	CreateBatch(ctx context.Context, companyID string, req dto.CreateBatchRequest, userID string) (*domain.Batch, error)
	AddJournalToBatch(ctx context.Context, companyID string, batchID string, journalID string, userID string) (*domain.Batch, error)
	RemoveJournalFromBatch(ctx context.Context, companyID string, batchID string, journalID string, userID string) (*domain.Batch, error)
	MarkReady(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error)
	PostBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error)
	CancelBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error)
}

// BatchSvcFacade combines all batch-related service interfaces
type BatchSvcFacade interface {
	BatchReaderSvc
	BatchWorkflowSvc
}
