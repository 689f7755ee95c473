package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch is a row of the batches table.
type Batch struct {
	BatchID       string          `db:"batch_id"`
	CompanyID     string          `db:"company_id"`
	BatchNumber   int64           `db:"batch_number"`
	BatchName     string          `db:"batch_name"`
	Description   string          `db:"description"`
	Status        string          `db:"status"`
	TotalJournals int             `db:"total_journals"`
	TotalDebits   decimal.Decimal `db:"total_debits"`
	TotalCredits  decimal.Decimal `db:"total_credits"`
	ReviewedBy    *string         `db:"reviewed_by"`
	ReviewedAt    *time.Time      `db:"reviewed_at"`
	PostedBy      *string         `db:"posted_by"`
	PostedAt      *time.Time      `db:"posted_at"`
	AuditFields
}
