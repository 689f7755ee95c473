package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
)

type batchRepository struct {
	a access
}

var _ portsrepo.BatchRepositoryFacade = (*batchRepository)(nil)

func (r *batchRepository) FindBatchByID(_ context.Context, companyID, batchID string) (*domain.Batch, error) {
	var found *domain.Batch
	r.a.read(func(st *state) {
		if b, ok := st.batches[batchID]; ok && b.CompanyID == companyID {
			found = &b
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *batchRepository) FindBatchByIDForUpdate(ctx context.Context, companyID, batchID string) (*domain.Batch, error) {
	return r.FindBatchByID(ctx, companyID, batchID)
}

func (r *batchRepository) ListBatches(_ context.Context, companyID string, status *domain.BatchStatus, limit int, offset int) ([]domain.Batch, error) {
	var all []domain.Batch
	r.a.read(func(st *state) {
		for _, b := range st.batches {
			if b.CompanyID == companyID && (status == nil || b.Status == *status) {
				all = append(all, b)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].BatchNumber > all[j].BatchNumber })
	return page(all, limit, offset), nil
}

func (r *batchRepository) SaveBatch(_ context.Context, batch domain.Batch) error {
	return r.a.write(func(st *state) error {
		for _, other := range st.batches {
			if other.BatchID == batch.BatchID {
				return fmt.Errorf("%w: batch %s already exists", apperrors.ErrDuplicate, batch.BatchID)
			}
			if other.CompanyID == batch.CompanyID && other.BatchNumber == batch.BatchNumber {
				return apperrors.NewLedgerError(apperrors.ErrDuplicateSequenceNumber, batch.BatchID, "batch number %d", batch.BatchNumber)
			}
		}
		batch.Journals = nil
		st.batches[batch.BatchID] = batch
		return nil
	})
}

func (r *batchRepository) UpdateBatch(_ context.Context, batch domain.Batch) error {
	return r.a.write(func(st *state) error {
		existing, ok := st.batches[batch.BatchID]
		if !ok || existing.CompanyID != batch.CompanyID {
			return apperrors.ErrNotFound
		}
		batch.Journals = nil
		st.batches[batch.BatchID] = batch
		return nil
	})
}
