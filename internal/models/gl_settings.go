package models

import "time"

// GLSettings is a row of the gl_settings table. DefaultPostingRules holds the raw JSONB document.
type GLSettings struct {
	CompanyID               string     `db:"company_id"`
	AutoJournalNumberPrefix string     `db:"auto_journal_number_prefix"`
	NextJournalNumber       int64      `db:"next_journal_number"`
	NextBatchNumber         int64      `db:"next_batch_number"`
	CurrentPeriodOpen       *time.Time `db:"current_period_open"`
	NextPeriodOpen          *time.Time `db:"next_period_open"`
	AllowFuturePosting      bool       `db:"allow_future_posting"`
	RequireBatchApproval    bool       `db:"require_batch_approval"`
	LockPostedEntries       bool       `db:"lock_posted_entries"`
	DefaultPostingRules     []byte     `db:"default_posting_rules"`
	AuditFields
}
