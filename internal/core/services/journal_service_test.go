package services_test

import (
	"sort"
	"sync"
	"testing"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	ledgerSuite
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) TestCreateJournal_Balanced() {
	j, err := s.createJournal(s.today(), debit(s.cash.AccountID, "500"), credit(s.revenue.AccountID, "500"))
	s.Require().NoError(err)

	s.Equal(domain.JournalDraft, j.Status)
	s.Equal("JE-000001", j.JournalNumber)
	s.Equal(int64(1), j.JournalSequence)
	s.Equal(domain.SourceManual, j.Source)
	s.True(j.IsBalanced)
	s.True(j.TotalDebits.Equal(decimal.NewFromInt(500)))
	s.True(j.TotalCredits.Equal(decimal.NewFromInt(500)))
	s.Require().Len(j.Lines, 2)
	s.Equal(1, j.Lines[0].LineNumber)
	s.Equal(2, j.Lines[1].LineNumber)
	s.Equal(j.JournalID, j.Lines[1].JournalID)

	posted, err := s.svc.Journal.PostJournal(s.ctx, s.companyID, j.JournalID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.JournalPosted, posted.Status)
	s.Require().NotNil(posted.PostedBy)
	s.Equal(s.userID, *posted.PostedBy)
}

func (s *JournalServiceTestSuite) TestCreateJournal_UnbalancedDraftCannotPost() {
	j, err := s.createJournal(s.today(), debit(s.cash.AccountID, "500"), credit(s.revenue.AccountID, "400"))
	s.Require().NoError(err)
	s.False(j.IsBalanced)

	_, err = s.svc.Journal.PostJournal(s.ctx, s.companyID, j.JournalID, s.userID)
	s.ErrorIs(err, apperrors.ErrUnbalancedJournal)
	s.Equal(j.JournalID, apperrors.EntityIDOf(err))
	s.Equal(domain.JournalDraft, s.journalStatus(j.JournalID))
}

func (s *JournalServiceTestSuite) TestCreateJournal_BalanceEpsilon() {
	j, err := s.createJournal(s.today(), debit(s.cash.AccountID, "100.005"), credit(s.revenue.AccountID, "100"))
	s.Require().NoError(err)
	s.True(j.IsBalanced)

	j, err = s.createJournal(s.today(), debit(s.cash.AccountID, "100.01"), credit(s.revenue.AccountID, "100"))
	s.Require().NoError(err)
	s.False(j.IsBalanced)
}

func (s *JournalServiceTestSuite) TestCreateJournal_Validation() {
	other := s.mustAccount("company-2", "1000", "Other Cash", domain.Asset)
	inactive := s.mustAccount(s.companyID, "1999", "Old Cash", domain.Asset)
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, s.companyID, inactive.AccountID, s.userID))

	tests := []struct {
		name     string
		lines    []dto.EntryLineRequest
		wantErr  error
		entityID string
	}{
		{
			name:    "single line",
			lines:   []dto.EntryLineRequest{debit(s.cash.AccountID, "10")},
			wantErr: apperrors.ErrInvalidJournalStructure,
		},
		{
			name:    "zero amount line",
			lines:   []dto.EntryLineRequest{debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "0")},
			wantErr: apperrors.ErrEmptyLine,
		},
		{
			name: "both sides on one line",
			lines: []dto.EntryLineRequest{
				{AccountID: s.cash.AccountID, DebitAmount: decimal.NewFromInt(5), CreditAmount: decimal.NewFromInt(5)},
				credit(s.revenue.AccountID, "5"),
			},
			wantErr: apperrors.ErrInvalidJournalStructure,
		},
		{
			name:    "negative amount",
			lines:   []dto.EntryLineRequest{debit(s.cash.AccountID, "-10"), credit(s.revenue.AccountID, "-10")},
			wantErr: apperrors.ErrInvalidJournalStructure,
		},
		{
			name:    "amount finer than stored scale",
			lines:   []dto.EntryLineRequest{debit(s.cash.AccountID, "0.00004"), credit(s.revenue.AccountID, "0.00004")},
			wantErr: apperrors.ErrInvalidJournalStructure,
		},
		{
			name:     "unknown account",
			lines:    []dto.EntryLineRequest{debit("missing-account", "10"), credit(s.revenue.AccountID, "10")},
			wantErr:  apperrors.ErrNotFound,
			entityID: "missing-account",
		},
		{
			name:     "account of another company",
			lines:    []dto.EntryLineRequest{debit(other.AccountID, "10"), credit(s.revenue.AccountID, "10")},
			wantErr:  apperrors.ErrNotFound,
			entityID: other.AccountID,
		},
		{
			name:     "inactive account",
			lines:    []dto.EntryLineRequest{debit(inactive.AccountID, "10"), credit(s.revenue.AccountID, "10")},
			wantErr:  apperrors.ErrValidation,
			entityID: inactive.AccountID,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.createJournal(s.today(), tt.lines...)
			s.ErrorIs(err, tt.wantErr)
			if tt.entityID != "" {
				s.Equal(tt.entityID, apperrors.EntityIDOf(err))
			}
		})
	}

	// No journal number was consumed by the rejected requests.
	j := s.mustJournal(debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))
	s.Equal("JE-000001", j.JournalNumber)
}

func (s *JournalServiceTestSuite) TestCreateJournal_ConcurrentNumbersAreUnique() {
	const n = 50
	var wg sync.WaitGroup
	results := make(chan *domain.Journal, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j, err := s.createJournal(s.today(), debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))
			if err != nil {
				errs <- err
				return
			}
			results <- j
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	seen := make(map[string]bool, n)
	var seqs []int64
	for j := range results {
		s.False(seen[j.JournalNumber], "duplicate journal number %s", j.JournalNumber)
		seen[j.JournalNumber] = true
		seqs = append(seqs, j.JournalSequence)
	}
	s.Require().Len(seqs, n)
	sort.Slice(seqs, func(i, k int) bool { return seqs[i] < seqs[k] })
	for i, seq := range seqs {
		s.Equal(int64(i+1), seq)
	}

	settings, err := s.svc.Settings.GetSettings(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Equal(int64(n+1), settings.NextJournalNumber)
}

// storeNumberedJournal writes a journal straight to the store without
// touching the company's counter.
func (s *JournalServiceTestSuite) storeNumberedJournal(seq int64) {
	s.Require().NoError(s.repos.JournalRepo.SaveJournal(s.ctx, domain.Journal{
		JournalID:       uuid.NewString(),
		CompanyID:       s.companyID,
		JournalNumber:   domain.FormatJournalNumber("JE-", seq),
		JournalSequence: seq,
		JournalDate:     s.today(),
		Source:          domain.SourceManual,
		Status:          domain.JournalDraft,
		TotalDebits:     decimal.Zero,
		TotalCredits:    decimal.Zero,
		AuditFields:     domain.NewAuditFields(s.userID, s.now),
	}))
}

func (s *JournalServiceTestSuite) TestCreateJournal_RecoversFromStaleCounter() {
	_, err := s.svc.Settings.GetSettings(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.storeNumberedJournal(1)
	s.storeNumberedJournal(2)

	j, err := s.createJournal(s.today(), debit(s.cash.AccountID, "5"), credit(s.revenue.AccountID, "5"))
	s.Require().NoError(err)
	s.Equal("JE-000003", j.JournalNumber)

	j = s.mustJournal(debit(s.cash.AccountID, "5"), credit(s.revenue.AccountID, "5"))
	s.Equal("JE-000004", j.JournalNumber)
}

func (s *JournalServiceTestSuite) TestCreateJournal_StaleSettingsWriteKeepsCounter() {
	stale, err := s.svc.Settings.GetSettings(s.ctx, s.companyID, s.userID)
	s.Require().NoError(err)
	s.Equal("JE-000001", s.mustJournal(debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1")).JournalNumber)

	stale.AllowFuturePosting = true
	s.Require().NoError(s.repos.SettingsRepo.UpdateSettings(s.ctx, *stale))

	settings, err := s.repos.SettingsRepo.FindSettings(s.ctx, s.companyID)
	s.Require().NoError(err)
	s.Equal(int64(2), settings.NextJournalNumber)
	s.True(settings.AllowFuturePosting)

	for _, want := range []string{"JE-000002", "JE-000003"} {
		j, err := s.createJournal(s.today(), debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))
		s.Require().NoError(err)
		s.Equal(want, j.JournalNumber)
	}
}

func (s *JournalServiceTestSuite) TestReverseJournal_RecoversFromStaleCounter() {
	orig := s.mustPosted(debit(s.cash.AccountID, "40"), credit(s.revenue.AccountID, "40"))
	s.storeNumberedJournal(2)

	reversal, err := s.svc.Journal.ReverseJournal(s.ctx, s.companyID, orig.JournalID, dto.ReverseJournalRequest{}, s.userID)
	s.Require().NoError(err)
	s.Equal("JE-000003", reversal.JournalNumber)
}

func (s *JournalServiceTestSuite) TestCreateJournal_UsesConfiguredPrefix() {
	s.updateSettings(dto.UpdateSettingsRequest{
		AutoJournalNumberPrefix: ptr("GJ-"),
		NextJournalNumber:       ptr(int64(42)),
	})
	j := s.mustJournal(debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))
	s.Equal("GJ-000042", j.JournalNumber)
}

func (s *JournalServiceTestSuite) TestPostJournal_PeriodRules() {
	s.updateSettings(dto.UpdateSettingsRequest{
		CurrentPeriodOpen: ptr(s.today().AddDate(0, 0, -14)),
		NextPeriodOpen:    ptr(s.today().AddDate(0, 0, -1)),
	})

	tests := []struct {
		name    string
		offset  int
		allowed bool
	}{
		{name: "before current period", offset: -20, allowed: false},
		{name: "inside current period", offset: -5, allowed: true},
		{name: "on next period open", offset: -1, allowed: false},
		{name: "in the future", offset: 3, allowed: false},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			j, err := s.createJournal(s.today().AddDate(0, 0, tt.offset), debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))
			s.Require().NoError(err)
			_, err = s.svc.Journal.PostJournal(s.ctx, s.companyID, j.JournalID, s.userID)
			if tt.allowed {
				s.NoError(err)
				return
			}
			s.ErrorIs(err, apperrors.ErrPeriodClosed)
			s.Equal(j.JournalID, apperrors.EntityIDOf(err))
			s.Contains(err.Error(), "date "+j.JournalDate.Format("2006-01-02"))
			s.Equal(domain.JournalDraft, s.journalStatus(j.JournalID))
		})
	}
}

func (s *JournalServiceTestSuite) TestPostJournal_FuturePostingAllowed() {
	s.updateSettings(dto.UpdateSettingsRequest{
		AllowFuturePosting: ptr(true),
		NextPeriodOpen:     ptr(s.today().AddDate(0, 0, 1)),
	})
	j, err := s.createJournal(s.today().AddDate(0, 1, 0), debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))
	s.Require().NoError(err)

	_, err = s.svc.Journal.PostJournal(s.ctx, s.companyID, j.JournalID, s.userID)
	s.NoError(err)
}

func (s *JournalServiceTestSuite) TestPostJournal_OnlyDraft() {
	j := s.mustPosted(debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))

	_, err := s.svc.Journal.PostJournal(s.ctx, s.companyID, j.JournalID, s.userID)
	s.ErrorIs(err, apperrors.ErrInvalidStateTransition)

	_, err = s.svc.Journal.PostJournal(s.ctx, s.companyID, "missing", s.userID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestUpdateJournal_ReplacesLines() {
	j := s.mustJournal(debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))

	updated, err := s.svc.Journal.UpdateJournal(s.ctx, s.companyID, j.JournalID, dto.UpdateJournalRequest{
		Memo: ptr("rent"),
		Lines: []dto.EntryLineRequest{
			debit(s.expense.AccountID, "300"),
			credit(s.cash.AccountID, "200"),
			credit(s.payable.AccountID, "50"),
		},
	}, s.userID)
	s.Require().NoError(err)

	s.Equal("rent", updated.Memo)
	s.Len(updated.Lines, 3)
	s.False(updated.IsBalanced)
	s.True(updated.TotalDebits.Equal(decimal.NewFromInt(300)))
	s.True(updated.TotalCredits.Equal(decimal.NewFromInt(250)))

	stored, err := s.svc.Journal.GetJournalByID(s.ctx, s.companyID, j.JournalID)
	s.Require().NoError(err)
	s.Len(stored.Lines, 3)
	s.Equal(3, stored.Lines[2].LineNumber)
	s.Equal(j.JournalNumber, stored.JournalNumber)
}

func (s *JournalServiceTestSuite) TestUpdateJournal_LockRules() {
	posted := s.mustPosted(debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))

	_, err := s.svc.Journal.UpdateJournal(s.ctx, s.companyID, posted.JournalID, dto.UpdateJournalRequest{Memo: ptr("x")}, s.userID)
	s.ErrorIs(err, apperrors.ErrJournalLocked)

	s.updateSettings(dto.UpdateSettingsRequest{LockPostedEntries: ptr(false)})

	updated, err := s.svc.Journal.UpdateJournal(s.ctx, s.companyID, posted.JournalID, dto.UpdateJournalRequest{Memo: ptr("corrected")}, s.userID)
	s.Require().NoError(err)
	s.Equal("corrected", updated.Memo)
	s.Equal(domain.JournalPosted, updated.Status)

	_, err = s.svc.Journal.UpdateJournal(s.ctx, s.companyID, posted.JournalID, dto.UpdateJournalRequest{
		Lines: []dto.EntryLineRequest{debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "9")},
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrUnbalancedJournal)

	cancelled := s.mustJournal(debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))
	_, err = s.svc.Journal.CancelJournal(s.ctx, s.companyID, cancelled.JournalID, s.userID)
	s.Require().NoError(err)
	_, err = s.svc.Journal.UpdateJournal(s.ctx, s.companyID, cancelled.JournalID, dto.UpdateJournalRequest{Memo: ptr("x")}, s.userID)
	s.ErrorIs(err, apperrors.ErrJournalLocked)
}

func (s *JournalServiceTestSuite) TestAddAndDeleteLine() {
	j := s.mustJournal(debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))

	withExtra, err := s.svc.Journal.AddLine(s.ctx, s.companyID, j.JournalID, debit(s.expense.AccountID, "5"), s.userID)
	s.Require().NoError(err)
	s.Len(withExtra.Lines, 3)
	s.False(withExtra.IsBalanced)
	s.Equal(3, withExtra.Lines[2].LineNumber)

	afterDelete, err := s.svc.Journal.DeleteLine(s.ctx, s.companyID, j.JournalID, withExtra.Lines[0].LineID, s.userID)
	s.Require().NoError(err)
	s.Require().Len(afterDelete.Lines, 2)
	s.Equal(1, afterDelete.Lines[0].LineNumber)
	s.Equal(s.revenue.AccountID, afterDelete.Lines[0].AccountID)
	s.Equal(2, afterDelete.Lines[1].LineNumber)
	s.True(afterDelete.TotalDebits.Equal(decimal.NewFromInt(5)))

	_, err = s.svc.Journal.DeleteLine(s.ctx, s.companyID, j.JournalID, afterDelete.Lines[0].LineID, s.userID)
	s.ErrorIs(err, apperrors.ErrInvalidJournalStructure)

	_, err = s.svc.Journal.DeleteLine(s.ctx, s.companyID, j.JournalID, "no-such-line", s.userID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Journal.AddLine(s.ctx, s.companyID, j.JournalID, credit(s.cash.AccountID, "0"), s.userID)
	s.ErrorIs(err, apperrors.ErrEmptyLine)
}

func (s *JournalServiceTestSuite) TestCancelJournal() {
	draft := s.mustJournal(debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))
	cancelled, err := s.svc.Journal.CancelJournal(s.ctx, s.companyID, draft.JournalID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.JournalCancelled, cancelled.Status)

	_, err = s.svc.Journal.PostJournal(s.ctx, s.companyID, draft.JournalID, s.userID)
	s.ErrorIs(err, apperrors.ErrInvalidStateTransition)

	posted := s.mustPosted(debit(s.cash.AccountID, "10"), credit(s.revenue.AccountID, "10"))
	_, err = s.svc.Journal.CancelJournal(s.ctx, s.companyID, posted.JournalID, s.userID)
	s.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (s *JournalServiceTestSuite) TestReverseJournal() {
	orig := s.mustPosted(debit(s.expense.AccountID, "120"), credit(s.cash.AccountID, "120"))

	rev, err := s.svc.Journal.ReverseJournal(s.ctx, s.companyID, orig.JournalID, dto.ReverseJournalRequest{}, s.userID)
	s.Require().NoError(err)

	s.Equal(domain.JournalPosted, rev.Status)
	s.Equal(domain.SourceAdjustment, rev.Source)
	s.Equal("Reversal of "+orig.JournalNumber, rev.Memo)
	s.Equal(s.today(), rev.JournalDate)
	s.Require().NotNil(rev.OriginalJournalID)
	s.Equal(orig.JournalID, *rev.OriginalJournalID)
	s.Require().Len(rev.Lines, 2)
	s.True(rev.Lines[0].CreditAmount.Equal(decimal.NewFromInt(120)))
	s.Equal(s.expense.AccountID, rev.Lines[0].AccountID)
	s.True(rev.Lines[1].DebitAmount.Equal(decimal.NewFromInt(120)))

	stored, err := s.svc.Journal.GetJournalByID(s.ctx, s.companyID, orig.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.JournalPosted, stored.Status)
	s.Require().NotNil(stored.ReversingJournalID)
	s.Equal(rev.JournalID, *stored.ReversingJournalID)

	_, err = s.svc.Journal.ReverseJournal(s.ctx, s.companyID, orig.JournalID, dto.ReverseJournalRequest{}, s.userID)
	s.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	_, err = s.svc.Journal.ReverseJournal(s.ctx, s.companyID, rev.JournalID, dto.ReverseJournalRequest{}, s.userID)
	s.ErrorIs(err, apperrors.ErrInvalidStateTransition)

	draft := s.mustJournal(debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))
	_, err = s.svc.Journal.ReverseJournal(s.ctx, s.companyID, draft.JournalID, dto.ReverseJournalRequest{}, s.userID)
	s.ErrorIs(err, apperrors.ErrInvalidStateTransition)

	result, err := s.svc.Balance.RecalculateBalances(s.ctx, s.companyID, false, s.userID)
	s.Require().NoError(err)
	s.Equal(4, result.TotalEntries)
	s.True(s.balanceOf(s.expense.AccountID).IsZero())
	s.True(s.balanceOf(s.cash.AccountID).IsZero())
}

func (s *JournalServiceTestSuite) TestReverseJournal_IntoClosedPeriodRollsBack() {
	orig := s.mustPosted(debit(s.expense.AccountID, "50"), credit(s.cash.AccountID, "50"))
	s.updateSettings(dto.UpdateSettingsRequest{CurrentPeriodOpen: ptr(s.today())})

	_, err := s.svc.Journal.ReverseJournal(s.ctx, s.companyID, orig.JournalID, dto.ReverseJournalRequest{
		JournalDate: ptr(s.today().AddDate(0, 0, -1)),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrPeriodClosed)

	stored, err := s.svc.Journal.GetJournalByID(s.ctx, s.companyID, orig.JournalID)
	s.Require().NoError(err)
	s.Nil(stored.ReversingJournalID)

	journals, _, err := s.svc.Journal.ListJournals(s.ctx, s.companyID, dto.ListJournalsParams{})
	s.Require().NoError(err)
	s.Len(journals, 1)
}

func (s *JournalServiceTestSuite) TestListJournals_Pagination() {
	for i := 0; i < 5; i++ {
		s.mustJournal(debit(s.cash.AccountID, "1"), credit(s.revenue.AccountID, "1"))
	}
	s.mustPosted(debit(s.cash.AccountID, "2"), credit(s.revenue.AccountID, "2"))

	page1, next, err := s.svc.Journal.ListJournals(s.ctx, s.companyID, dto.ListJournalsParams{Limit: 4})
	s.Require().NoError(err)
	s.Require().Len(page1, 4)
	s.Require().NotNil(next)
	s.Equal("JE-000006", page1[0].JournalNumber)

	page2, next2, err := s.svc.Journal.ListJournals(s.ctx, s.companyID, dto.ListJournalsParams{Limit: 4, NextToken: next})
	s.Require().NoError(err)
	s.Len(page2, 2)
	s.Nil(next2)
	s.Equal("JE-000001", page2[1].JournalNumber)

	posted, _, err := s.svc.Journal.ListJournals(s.ctx, s.companyID, dto.ListJournalsParams{Status: ptr("POSTED")})
	s.Require().NoError(err)
	s.Len(posted, 1)

	_, _, err = s.svc.Journal.ListJournals(s.ctx, s.companyID, dto.ListJournalsParams{NextToken: ptr("%%%")})
	s.ErrorIs(err, apperrors.ErrValidation)
}
