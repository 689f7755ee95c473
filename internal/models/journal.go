package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// Journal is a row of the journals table.
type Journal struct {
	JournalID          string          `db:"journal_id"`
	CompanyID          string          `db:"company_id"`
	JournalNumber      string          `db:"journal_number"`
	JournalSequence    int64           `db:"journal_sequence"`
	JournalDate        time.Time       `db:"journal_date"`
	Memo               string          `db:"memo"`
	Source             string          `db:"source"`
	SourceID           *string         `db:"source_id"`
	Status             JournalStatus   `db:"status"`
	BatchID            *string         `db:"batch_id"`
	IsBalanced         bool            `db:"is_balanced"`
	TotalDebits        decimal.Decimal `db:"total_debits"`
	TotalCredits       decimal.Decimal `db:"total_credits"`
	PostedAt           *time.Time      `db:"posted_at"`
	PostedBy           *string         `db:"posted_by"`
	OriginalJournalID  *string         `db:"original_journal_id"`
	ReversingJournalID *string         `db:"reversing_journal_id"`
	AuditFields
}

// EntryLine is a row of the journal_entries table.
type EntryLine struct {
	LineID       string          `db:"line_id"`
	JournalID    string          `db:"journal_id"`
	LineNumber   int             `db:"line_number"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`
	EntityType   *string         `db:"entity_type"`
	EntityID     *string         `db:"entity_id"`
}
