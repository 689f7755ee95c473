package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus is the state of a batch in the review/posting workflow.
type BatchStatus string

const (
	BatchDraft     BatchStatus = "DRAFT"
	BatchReady     BatchStatus = "READY"
	BatchPosted    BatchStatus = "POSTED"
	BatchCancelled BatchStatus = "CANCELLED"
)

// Posted and Cancelled have no outgoing edges.
var batchTransitions = map[BatchStatus][]BatchStatus{
	BatchDraft: {BatchReady, BatchCancelled},
	BatchReady: {BatchPosted, BatchCancelled},
}

// CanTransitionTo reports whether the batch state machine allows s -> next.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	for _, allowed := range batchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s BatchStatus) IsTerminal() bool {
	return len(batchTransitions[s]) == 0
}

// Batch groups journals that are reviewed and posted together.
type Batch struct {
	BatchID       string          `json:"batchID"`
	CompanyID     string          `json:"companyID"`
	BatchNumber   int64           `json:"batchNumber"`
	BatchName     string          `json:"batchName"`
	Description   string          `json:"description"`
	Status        BatchStatus     `json:"status"`
	TotalJournals int             `json:"totalJournals"`
	TotalDebits   decimal.Decimal `json:"totalDebits"`
	TotalCredits  decimal.Decimal `json:"totalCredits"`
	ReviewedBy    *string         `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewedAt,omitempty"`
	PostedBy      *string         `json:"postedBy,omitempty"`
	PostedAt      *time.Time      `json:"postedAt,omitempty"`
	AuditFields
	Journals []Journal `json:"journals,omitempty"`
}

// RecomputeAggregates derives the batch totals from its member journals.
func (b *Batch) RecomputeAggregates(members []Journal) {
	debits, credits := decimal.Zero, decimal.Zero
	for _, j := range members {
		debits = debits.Add(j.TotalDebits)
		credits = credits.Add(j.TotalCredits)
	}
	b.TotalJournals = len(members)
	b.TotalDebits = debits
	b.TotalCredits = credits
}

// IsBalanced reports whether the batch-level totals balance.
func (b *Batch) IsBalanced() bool {
	return IsBalancedAmounts(b.TotalDebits, b.TotalCredits)
}
