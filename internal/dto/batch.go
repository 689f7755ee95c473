package dto

import (
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBatchRequest defines the data needed to open a batch.
type CreateBatchRequest struct {
	BatchName   string `json:"batchName" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// AddJournalToBatchRequest names the journal to add.
type AddJournalToBatchRequest struct {
	JournalID string `json:"journalID" binding:"required"`
}

// ListBatchesParams defines query parameters for listing batches.
type ListBatchesParams struct {
	Limit  int     `form:"limit,default=50"`
	Offset int     `form:"offset,default=0"`
	Status *string `form:"status" binding:"omitempty,oneof=DRAFT READY POSTED CANCELLED"`
}

// BatchResponse defines the data returned for a batch.
type BatchResponse struct {
	BatchID       string             `json:"batchID"`
	BatchNumber   int64              `json:"batchNumber"`
	BatchName     string             `json:"batchName"`
	Description   string             `json:"description"`
	Status        domain.BatchStatus `json:"status"`
	TotalJournals int                `json:"totalJournals"`
	TotalDebits   decimal.Decimal    `json:"totalDebits"`
	TotalCredits  decimal.Decimal    `json:"totalCredits"`
	ReviewedBy    *string            `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time         `json:"reviewedAt,omitempty"`
	PostedBy      *string            `json:"postedBy,omitempty"`
	PostedAt      *time.Time         `json:"postedAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	Journals      []JournalResponse  `json:"journals,omitempty"`
}

// ListBatchesResponse wraps a page of batches.
type ListBatchesResponse struct {
	Batches []BatchResponse `json:"batches"`
}

// ToBatchResponse converts a domain.Batch to BatchResponse DTO.
func ToBatchResponse(b *domain.Batch) BatchResponse {
	resp := BatchResponse{
		BatchID:       b.BatchID,
		BatchNumber:   b.BatchNumber,
		BatchName:     b.BatchName,
		Description:   b.Description,
		Status:        b.Status,
		TotalJournals: b.TotalJournals,
		TotalDebits:   b.TotalDebits,
		TotalCredits:  b.TotalCredits,
		ReviewedBy:    b.ReviewedBy,
		ReviewedAt:    b.ReviewedAt,
		PostedBy:      b.PostedBy,
		PostedAt:      b.PostedAt,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
	}
	if len(b.Journals) > 0 {
		resp.Journals = ToJournalResponses(b.Journals)
	}
	return resp
}

// ToBatchResponses converts a slice of domain.Batch.
func ToBatchResponses(batches []domain.Batch) []BatchResponse {
	res := make([]BatchResponse, len(batches))
	for i, b := range batches {
		res[i] = ToBatchResponse(&b)
	}
	return res
}
