package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// UpdateSettingsRequest is a partial update: nil fields are left unchanged.
// DefaultPostingRules is validated by the settings service.
type UpdateSettingsRequest struct {
	AutoJournalNumberPrefix *string         `json:"autoJournalNumberPrefix" binding:"omitempty,max=20"`
	NextJournalNumber       *int64          `json:"nextJournalNumber" binding:"omitempty,min=1"`
	CurrentPeriodOpen       *time.Time      `json:"currentPeriodOpen"`
	NextPeriodOpen          *time.Time      `json:"nextPeriodOpen"`
	AllowFuturePosting      *bool           `json:"allowFuturePosting"`
	RequireBatchApproval    *bool           `json:"requireBatchApproval"`
	LockPostedEntries       *bool           `json:"lockPostedEntries"`
	DefaultPostingRules     json.RawMessage `json:"defaultPostingRules" swaggertype:"object"`
}

// SettingsResponse defines the data returned for ledger settings.
type SettingsResponse struct {
	AutoJournalNumberPrefix string                        `json:"autoJournalNumberPrefix"`
	NextJournalNumber       int64                         `json:"nextJournalNumber"`
	NextBatchNumber         int64                         `json:"nextBatchNumber"`
	CurrentPeriodOpen       *time.Time                    `json:"currentPeriodOpen,omitempty"`
	NextPeriodOpen          *time.Time                    `json:"nextPeriodOpen,omitempty"`
	AllowFuturePosting      bool                          `json:"allowFuturePosting"`
	RequireBatchApproval    bool                          `json:"requireBatchApproval"`
	LockPostedEntries       bool                          `json:"lockPostedEntries"`
	DefaultPostingRules     map[string]domain.PostingRule `json:"defaultPostingRules"`
	LastUpdatedAt           time.Time                     `json:"lastUpdatedAt"`
	LastUpdatedBy           string                        `json:"lastUpdatedBy"`
}

// ToSettingsResponse converts domain.GLSettings.
func ToSettingsResponse(s *domain.GLSettings) SettingsResponse {
	return SettingsResponse{
		AutoJournalNumberPrefix: s.AutoJournalNumberPrefix,
		NextJournalNumber:       s.NextJournalNumber,
		NextBatchNumber:         s.NextBatchNumber,
		CurrentPeriodOpen:       s.CurrentPeriodOpen,
		NextPeriodOpen:          s.NextPeriodOpen,
		AllowFuturePosting:      s.AllowFuturePosting,
		RequireBatchApproval:    s.RequireBatchApproval,
		LockPostedEntries:       s.LockPostedEntries,
		DefaultPostingRules:     s.DefaultPostingRules,
		LastUpdatedAt:           s.LastUpdatedAt,
		LastUpdatedBy:           s.LastUpdatedBy,
	}
}
