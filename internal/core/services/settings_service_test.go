package services_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	ledgerSuite
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (s *SettingsServiceTestSuite) TestGetSettings_CreatesDefaults() {
	settings, err := s.svc.Settings.GetSettings(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)

	s.Equal(s.companyID, settings.CompanyID)
	s.Equal(domain.DefaultJournalNumberPrefix, settings.AutoJournalNumberPrefix)
	s.Equal(int64(1), settings.NextJournalNumber)
	s.Equal(int64(1), settings.NextBatchNumber)
	s.True(settings.LockPostedEntries)
	s.False(settings.AllowFuturePosting)
	s.False(settings.RequireBatchApproval)
	s.Nil(settings.CurrentPeriodOpen)
	s.Empty(settings.DefaultPostingRules)

	again, err := s.svc.Settings.GetSettings(s.ctx, s.companyID, "someone-else")
	s.Require().NoError(err)
	s.Equal(s.userID, again.CreatedBy)
}

func (s *SettingsServiceTestSuite) TestUpdateSettings_PartialUpdate() {
	open := s.now.AddDate(0, -1, 0)
	updated := s.updateSettings(dto.UpdateSettingsRequest{
		CurrentPeriodOpen:  &open,
		AllowFuturePosting: ptr(true),
	})
	s.Require().NotNil(updated.CurrentPeriodOpen)
	s.Equal(domain.DateOnly(open), *updated.CurrentPeriodOpen)
	s.True(updated.AllowFuturePosting)
	s.True(updated.LockPostedEntries)
	s.Equal(s.userID, updated.LastUpdatedBy)

	updated = s.updateSettings(dto.UpdateSettingsRequest{LockPostedEntries: ptr(false)})
	s.False(updated.LockPostedEntries)
	s.True(updated.AllowFuturePosting)
	s.NotNil(updated.CurrentPeriodOpen)
}

func (s *SettingsServiceTestSuite) TestUpdateSettings_Validation() {
	s.mustJournal(debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))
	s.mustJournal(debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))

	tests := []struct {
		name string
		req  dto.UpdateSettingsRequest
	}{
		{
			name: "journal number moves backwards",
			req:  dto.UpdateSettingsRequest{NextJournalNumber: ptr(int64(2))},
		},
		{
			name: "next period not after current period",
			req: dto.UpdateSettingsRequest{
				CurrentPeriodOpen: ptr(s.today()),
				NextPeriodOpen:    ptr(s.today()),
			},
		},
		{
			name: "unknown rule field",
			req:  dto.UpdateSettingsRequest{DefaultPostingRules: json.RawMessage(`{"payroll":{"account":"6000"}}`)},
		},
		{
			name: "rule without account",
			req:  dto.UpdateSettingsRequest{DefaultPostingRules: json.RawMessage(`{"payroll":{"side":"DEBIT"}}`)},
		},
		{
			name: "rule with bad side",
			req:  dto.UpdateSettingsRequest{DefaultPostingRules: json.RawMessage(`{"payroll":{"account_number":"6000","side":"LEFT"}}`)},
		},
		{
			name: "rule with unknown account",
			req:  dto.UpdateSettingsRequest{DefaultPostingRules: json.RawMessage(`{"payroll":{"account_number":"9999"}}`)},
		},
		{
			name: "rules not an object",
			req:  dto.UpdateSettingsRequest{DefaultPostingRules: json.RawMessage(`[1,2]`)},
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Settings.UpdateSettings(s.ctx, s.companyID, tt.req, s.userID)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}

	settings, err := s.svc.Settings.GetSettings(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Equal(int64(3), settings.NextJournalNumber)
	s.Nil(settings.CurrentPeriodOpen)
	s.Empty(settings.DefaultPostingRules)
}

func (s *SettingsServiceTestSuite) TestUpdateSettings_PostingRules() {
	rules := json.RawMessage(`{
		"payroll_expense": {"account_number": "6000", "side": "DEBIT"},
		"cash": {"account_id": "` + s.cash.AccountID + `"}
	}`)

	updated := s.updateSettings(dto.UpdateSettingsRequest{DefaultPostingRules: rules})
	s.Require().Len(updated.DefaultPostingRules, 2)
	s.Equal(domain.SideDebit, updated.DefaultPostingRules["payroll_expense"].Side)
	s.Equal(s.cash.AccountID, updated.DefaultPostingRules["cash"].AccountID)

	stored, err := s.svc.Settings.GetSettings(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Len(stored.DefaultPostingRules, 2)

	updated = s.updateSettings(dto.UpdateSettingsRequest{DefaultPostingRules: json.RawMessage(`{}`)})
	s.Empty(updated.DefaultPostingRules)
}

func (s *SettingsServiceTestSuite) TestSettingsAreScopedPerCompany() {
	s.updateSettings(dto.UpdateSettingsRequest{AutoJournalNumberPrefix: ptr("C1-")})

	other, err := s.svc.Settings.GetSettings(s.ctx, "company-2", s.userID)
	s.Require().NoError(err)
	s.Equal(domain.DefaultJournalNumberPrefix, other.AutoJournalNumberPrefix)
}
