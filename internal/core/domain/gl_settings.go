package domain

import (
	"fmt"
	"time"
)

// Defaults applied when a company's settings row is first created.
const (
	DefaultJournalNumberPrefix = "JE-"
	journalNumberWidth         = 6
)

// PostingSide is the side a default posting rule books to.
type PostingSide string

const (
	SideDebit  PostingSide = "DEBIT"
	SideCredit PostingSide = "CREDIT"
)

// PostingRule names the default account used for a posting key (e.g. "payroll_expense").
type PostingRule struct {
	AccountID     string      `json:"account_id,omitempty" validate:"required_without=AccountNumber,omitempty,max=64"`
	AccountNumber string      `json:"account_number,omitempty" validate:"required_without=AccountID,omitempty,max=64"`
	Side          PostingSide `json:"side,omitempty" validate:"omitempty,oneof=DEBIT CREDIT"`
}

// GLSettings is the per-company ledger configuration.
type GLSettings struct {
	CompanyID               string                 `json:"companyID"`
	AutoJournalNumberPrefix string                 `json:"autoJournalNumberPrefix"`
	NextJournalNumber       int64                  `json:"nextJournalNumber"`
	NextBatchNumber         int64                  `json:"nextBatchNumber"`
	CurrentPeriodOpen       *time.Time             `json:"currentPeriodOpen,omitempty"`
	NextPeriodOpen          *time.Time             `json:"nextPeriodOpen,omitempty"`
	AllowFuturePosting      bool                   `json:"allowFuturePosting"`
	RequireBatchApproval    bool                   `json:"requireBatchApproval"`
	LockPostedEntries       bool                   `json:"lockPostedEntries"`
	DefaultPostingRules     map[string]PostingRule `json:"defaultPostingRules"`
	AuditFields
}

// DefaultGLSettings returns the settings a company starts with.
func DefaultGLSettings(companyID, userID string, now time.Time) GLSettings {
	return GLSettings{
		CompanyID:               companyID,
		AutoJournalNumberPrefix: DefaultJournalNumberPrefix,
		NextJournalNumber:       1,
		NextBatchNumber:         1,
		LockPostedEntries:       true,
		DefaultPostingRules:     map[string]PostingRule{},
		AuditFields:             NewAuditFields(userID, now),
	}
}

// FormatJournalNumber renders a sequence value with the given prefix, e.g. JE-000042.
func FormatJournalNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, journalNumberWidth, seq)
}

// PostingDateViolation returns a non-empty reason when a journal dated date
// cannot be posted on day today under these settings.
func (s GLSettings) PostingDateViolation(date, today time.Time) string {
	d := DateOnly(date)
	if s.CurrentPeriodOpen != nil && d.Before(DateOnly(*s.CurrentPeriodOpen)) {
		return fmt.Sprintf("date %s is before the open period starting %s",
			d.Format(time.DateOnly), s.CurrentPeriodOpen.Format(time.DateOnly))
	}
	if s.AllowFuturePosting {
		return ""
	}
	if d.After(DateOnly(today)) {
		return fmt.Sprintf("date %s is in the future", d.Format(time.DateOnly))
	}
	if s.NextPeriodOpen != nil && !d.Before(DateOnly(*s.NextPeriodOpen)) {
		return fmt.Sprintf("date %s falls in the period starting %s",
			d.Format(time.DateOnly), s.NextPeriodOpen.Format(time.DateOnly))
	}
	return ""
}
