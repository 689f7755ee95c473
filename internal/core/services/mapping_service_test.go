package services_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MappingServiceTestSuite struct {
	ledgerSuite
}

func TestMappingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MappingServiceTestSuite))
}

func (s *MappingServiceTestSuite) mapLabel(label string, field domain.GLFieldType, accountID string) *domain.AccountMapping {
	m, err := s.svc.Mapping.CreateMapping(s.ctx, s.companyID, dto.CreateMappingRequest{
		GLAccountName:  label,
		GLFieldType:    field,
		ChartAccountID: accountID,
	}, s.userID)
	s.Require().NoError(err)
	return m
}

func (s *MappingServiceTestSuite) TestFindUnmatchedEntries_GroupsAndSorts() {
	s.seedImportRows(
		importRow("Cash", "-Split-", "Acme Ltd", "100"),
		importRow("Checking", "-Split-", "Acme Ltd", "-40"),
		importRow("Checking", "Sales Revenue", "", "25"),
		importRow("4000", "Petty Cash", "-Split-", "-10"),
		importRow("-Split-", "-Split-", "-Split-", "5"),
		importRow("  ", "", "", "7"),
	)

	unmatched, err := s.svc.Mapping.FindUnmatchedEntries(s.ctx, s.companyID)
	s.Require().NoError(err)

	s.Require().Len(unmatched, 3)
	s.Equal(domain.FieldAccountName, unmatched[0].FieldType)
	s.Equal("Checking", unmatched[0].Label)
	s.Equal(2, unmatched[0].EntryCount)
	s.True(unmatched[0].TotalAmount.Equal(decimal.NewFromInt(65)))

	s.Equal(domain.FieldSplitAccount, unmatched[1].FieldType)
	s.Equal("Petty Cash", unmatched[1].Label)
	s.True(unmatched[1].TotalAmount.Equal(decimal.NewFromInt(10)))

	s.Equal(domain.FieldName, unmatched[2].FieldType)
	s.Equal("Acme Ltd", unmatched[2].Label)
	s.Equal(2, unmatched[2].EntryCount)
	s.True(unmatched[2].TotalAmount.Equal(decimal.NewFromInt(140)))

	for _, u := range unmatched {
		s.NotEqual(domain.SplitMarkerLabel, u.Label)
	}
}

func (s *MappingServiceTestSuite) TestFindUnmatchedEntries_MappingsResolveLabels() {
	s.seedImportRows(
		importRow("Checking", "", "", "10"),
		importRow("Checking", "", "", "-3"),
	)
	s.mapLabel("Checking", domain.FieldAccountName, s.bank.AccountID)

	unmatched, err := s.svc.Mapping.FindUnmatchedEntries(s.ctx, s.companyID)
	s.Require().NoError(err)
	s.Empty(unmatched)
}

func (s *MappingServiceTestSuite) TestFindUnmatchedEntries_DuplicateNamesStayUnmatched() {
	s.mustAccount(s.companyID, "1020", "Cash", domain.Asset)
	s.seedImportRows(importRow("Cash", "", "", "10"))

	unmatched, err := s.svc.Mapping.FindUnmatchedEntries(s.ctx, s.companyID)
	s.Require().NoError(err)
	s.Require().Len(unmatched, 1)
	s.Equal("Cash", unmatched[0].Label)
}

func (s *MappingServiceTestSuite) TestCreateMapping_Validation() {
	tests := []struct {
		name    string
		req     dto.CreateMappingRequest
		wantErr error
	}{
		{
			name:    "split marker",
			req:     dto.CreateMappingRequest{GLAccountName: "-Split-", GLFieldType: domain.FieldSplitAccount, ChartAccountID: s.cash.AccountID},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "blank label",
			req:     dto.CreateMappingRequest{GLAccountName: "   ", GLFieldType: domain.FieldName, ChartAccountID: s.cash.AccountID},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown field type",
			req:     dto.CreateMappingRequest{GLAccountName: "Checking", GLFieldType: "memo", ChartAccountID: s.cash.AccountID},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown account",
			req:     dto.CreateMappingRequest{GLAccountName: "Checking", GLFieldType: domain.FieldAccountName, ChartAccountID: "nope"},
			wantErr: apperrors.ErrNotFound,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Mapping.CreateMapping(s.ctx, s.companyID, tt.req, s.userID)
			s.ErrorIs(err, tt.wantErr)
		})
	}

	mappings, err := s.svc.Mapping.ListMappings(s.ctx, s.companyID)
	s.Require().NoError(err)
	s.Empty(mappings)
}

func (s *MappingServiceTestSuite) TestCreateMapping_UpsertsOnKey() {
	first := s.mapLabel(" Checking ", domain.FieldAccountName, s.cash.AccountID)
	s.Equal("Checking", first.GLAccountName)

	second := s.mapLabel("Checking", domain.FieldAccountName, s.bank.AccountID)
	s.Equal(first.MappingID, second.MappingID)
	s.Equal(s.bank.AccountID, second.ChartAccountID)

	s.mapLabel("Checking", domain.FieldName, s.cash.AccountID)

	mappings, err := s.svc.Mapping.ListMappings(s.ctx, s.companyID)
	s.Require().NoError(err)
	s.Len(mappings, 2)

	s.Require().NoError(s.svc.Mapping.DeleteMapping(s.ctx, s.companyID, first.MappingID, s.userID))
	err = s.svc.Mapping.DeleteMapping(s.ctx, s.companyID, first.MappingID, s.userID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *MappingServiceTestSuite) TestAutoMap_Tiers() {
	s.seedImportRows(
		importRow("Sales Revenue", "", "", "10"),
		importRow("2000", "", "", "10"),
		importRow("6000 Office Expense:Supplies", "", "", "10"),
		importRow("Unknown Label", "", "", "10"),
		importRow("-Split-", "", "", "10"),
	)

	result, err := s.svc.Mapping.AutoMapObviousMatches(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Equal(3, result.MappingsCreated)
	s.Empty(result.Ambiguous)

	byLabel := make(map[string]string)
	mappings, err := s.svc.Mapping.ListMappings(s.ctx, s.companyID)
	s.Require().NoError(err)
	for _, m := range mappings {
		s.Equal(domain.FieldAccountName, m.GLFieldType)
		byLabel[m.GLAccountName] = m.ChartAccountID
	}
	s.Equal(s.revenue.AccountID, byLabel["Sales Revenue"])
	s.Equal(s.payable.AccountID, byLabel["2000"])
	s.Equal(s.expense.AccountID, byLabel["6000 Office Expense:Supplies"])
	s.NotContains(byLabel, "Unknown Label")
	s.NotContains(byLabel, domain.SplitMarkerLabel)

	again, err := s.svc.Mapping.AutoMapObviousMatches(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Zero(again.MappingsCreated)
}

func (s *MappingServiceTestSuite) TestAutoMap_NeverPicksAmongCandidates() {
	twin := s.mustAccount(s.companyID, "1005", "Cash", domain.Asset)
	s.seedImportRows(importRow("Cash", "", "", "10"))

	result, err := s.svc.Mapping.AutoMapObviousMatches(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Zero(result.MappingsCreated)
	s.Require().Len(result.Ambiguous, 1)
	s.Equal("Cash", result.Ambiguous[0].Label)
	s.ElementsMatch([]string{s.cash.AccountID, twin.AccountID}, result.Ambiguous[0].CandidateAccountIDs)
	s.ErrorIs(result.Ambiguous[0].Err, apperrors.ErrAmbiguousMapping)
	s.Equal("Cash", apperrors.EntityIDOf(result.Ambiguous[0].Err))

	mappings, err := s.svc.Mapping.ListMappings(s.ctx, s.companyID)
	s.Require().NoError(err)
	s.Empty(mappings)
}

func (s *MappingServiceTestSuite) TestAutoMap_SkipsInactiveAccounts() {
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, s.companyID, s.bank.AccountID, s.userID))
	s.seedImportRows(importRow("Bank", "", "", "10"))

	result, err := s.svc.Mapping.AutoMapObviousMatches(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Zero(result.MappingsCreated)
}

func (s *MappingServiceTestSuite) TestHundredRowImport() {
	names := []string{s.cash.FullName, s.bank.FullName, s.revenue.FullName, s.expense.FullName}
	rows := make([]domain.ImportRow, 0, 100)
	for i := 0; i < 80; i++ {
		rows = append(rows, importRow(names[i%len(names)], "", "", fmt.Sprintf("%d", i+1)))
	}
	for i := 0; i < 20; i++ {
		rows = append(rows, importRow(domain.SplitMarkerLabel, domain.SplitMarkerLabel, "", "-1"))
	}
	s.seedImportRows(rows...)

	unmatched, err := s.svc.Mapping.FindUnmatchedEntries(s.ctx, s.companyID)
	s.Require().NoError(err)
	s.LessOrEqual(len(unmatched), 20)
	s.Empty(unmatched)

	result, err := s.svc.Mapping.AutoMapObviousMatches(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Equal(len(names), result.MappingsCreated)
	s.LessOrEqual(result.MappingsCreated, 80)
	s.Empty(result.Ambiguous)
}
