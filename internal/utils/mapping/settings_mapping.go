package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/models"
)

// ToModelGLSettings converts domain settings to a model row, encoding the posting rules as JSON.
func ToModelGLSettings(d domain.GLSettings) (models.GLSettings, error) {
	rules := d.DefaultPostingRules
	if rules == nil {
		rules = map[string]domain.PostingRule{}
	}
	raw, err := json.Marshal(rules)
	if err != nil {
		return models.GLSettings{}, fmt.Errorf("encode default posting rules: %w", err)
	}
	return models.GLSettings{
		CompanyID:               d.CompanyID,
		AutoJournalNumberPrefix: d.AutoJournalNumberPrefix,
		NextJournalNumber:       d.NextJournalNumber,
		NextBatchNumber:         d.NextBatchNumber,
		CurrentPeriodOpen:       dateOnlyPtr(d.CurrentPeriodOpen),
		NextPeriodOpen:          dateOnlyPtr(d.NextPeriodOpen),
		AllowFuturePosting:      d.AllowFuturePosting,
		RequireBatchApproval:    d.RequireBatchApproval,
		LockPostedEntries:       d.LockPostedEntries,
		DefaultPostingRules:     raw,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainGLSettings converts a model row to domain settings.
func ToDomainGLSettings(m models.GLSettings) (domain.GLSettings, error) {
	rules := map[string]domain.PostingRule{}
	if len(m.DefaultPostingRules) > 0 {
		if err := json.Unmarshal(m.DefaultPostingRules, &rules); err != nil {
			return domain.GLSettings{}, fmt.Errorf("decode default posting rules: %w", err)
		}
	}
	return domain.GLSettings{
		CompanyID:               m.CompanyID,
		AutoJournalNumberPrefix: m.AutoJournalNumberPrefix,
		NextJournalNumber:       m.NextJournalNumber,
		NextBatchNumber:         m.NextBatchNumber,
		CurrentPeriodOpen:       dateOnlyPtr(m.CurrentPeriodOpen),
		NextPeriodOpen:          dateOnlyPtr(m.NextPeriodOpen),
		AllowFuturePosting:      m.AllowFuturePosting,
		RequireBatchApproval:    m.RequireBatchApproval,
		LockPostedEntries:       m.LockPostedEntries,
		DefaultPostingRules:     rules,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}, nil
}
