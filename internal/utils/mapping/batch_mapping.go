package mapping

import (
	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/models"
)

// ToModelBatch converts a domain Batch to a model Batch
func ToModelBatch(d domain.Batch) models.Batch {
	return models.Batch{
		BatchID:       d.BatchID,
		CompanyID:     d.CompanyID,
		BatchNumber:   d.BatchNumber,
		BatchName:     d.BatchName,
		Description:   d.Description,
		Status:        string(d.Status),
		TotalJournals: d.TotalJournals,
		TotalDebits:   d.TotalDebits,
		TotalCredits:  d.TotalCredits,
		ReviewedBy:    d.ReviewedBy,
		ReviewedAt:    d.ReviewedAt,
		PostedBy:      d.PostedBy,
		PostedAt:      d.PostedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatch converts a model Batch to a domain Batch
func ToDomainBatch(m models.Batch) domain.Batch {
	return domain.Batch{
		BatchID:       m.BatchID,
		CompanyID:     m.CompanyID,
		BatchNumber:   m.BatchNumber,
		BatchName:     m.BatchName,
		Description:   m.Description,
		Status:        domain.BatchStatus(m.Status),
		TotalJournals: m.TotalJournals,
		TotalDebits:   m.TotalDebits,
		TotalCredits:  m.TotalCredits,
		ReviewedBy:    m.ReviewedBy,
		ReviewedAt:    m.ReviewedAt,
		PostedBy:      m.PostedBy,
		PostedAt:      m.PostedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBatchSlice converts a slice of model Batches to a slice of domain Batches
func ToDomainBatchSlice(ms []models.Batch) []domain.Batch {
	ds := make([]domain.Batch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBatch(m)
	}
	return ds
}
