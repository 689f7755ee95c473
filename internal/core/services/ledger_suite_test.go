package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/core/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/SscSPs/gl_backend/internal/importer"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/SscSPs/gl_backend/internal/platform/lock"
	"github.com/SscSPs/gl_backend/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ledgerSuite wires every service to a fresh in-memory store with a small
// chart of accounts and a pinned clock.
type ledgerSuite struct {
	suite.Suite
	ctx       context.Context
	repos     portsrepo.RepositoryProvider
	svc       *portssvc.ServiceContainer
	locker    *lock.LocalLocker
	now       time.Time
	companyID string
	userID    string

	cash    *domain.Account
	bank    *domain.Account
	revenue *domain.Account
	expense *domain.Account
	payable *domain.Account
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = memory.NewStore().NewRepositoryProvider()
	s.locker = lock.NewLocalLocker()
	s.now = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	s.companyID = "company-1"
	s.userID = "user-1"

	cfg := &config.Config{RecalcLockTTL: time.Minute, ImportMaxRows: 1000}
	s.svc = services.NewServiceContainer(cfg, s.repos, services.Dependencies{
		Locker:     s.locker,
		FileReader: importer.NewFetcher(importer.WithLocalFiles()),
	}, services.WithClock(func() time.Time { return s.now }))

	s.cash = s.mustAccount(s.companyID, "1000", "Cash", domain.Asset)
	s.bank = s.mustAccount(s.companyID, "1010", "Bank", domain.Asset)
	s.revenue = s.mustAccount(s.companyID, "4000", "Sales Revenue", domain.Revenue)
	s.expense = s.mustAccount(s.companyID, "6000", "Office Expense", domain.Expense)
	s.payable = s.mustAccount(s.companyID, "2000", "Accounts Payable", domain.Liability)
}

func (s *ledgerSuite) mustAccount(companyID, number, name string, accountType domain.AccountType) *domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, companyID, dto.CreateAccountRequest{
		AccountNumber: number,
		FullName:      name,
		AccountType:   accountType,
	}, s.userID)
	s.Require().NoError(err)
	return acc
}

func (s *ledgerSuite) today() time.Time {
	return domain.DateOnly(s.now)
}

func debit(accountID, amount string) dto.EntryLineRequest {
	return dto.EntryLineRequest{AccountID: accountID, DebitAmount: decimal.RequireFromString(amount)}
}

func credit(accountID, amount string) dto.EntryLineRequest {
	return dto.EntryLineRequest{AccountID: accountID, CreditAmount: decimal.RequireFromString(amount)}
}

func (s *ledgerSuite) createJournal(date time.Time, lines ...dto.EntryLineRequest) (*domain.Journal, error) {
	return s.svc.Journal.CreateJournal(s.ctx, s.companyID, dto.CreateJournalRequest{
		JournalDate: date,
		Memo:        "test journal",
		Lines:       lines,
	}, s.userID)
}

func (s *ledgerSuite) mustJournal(lines ...dto.EntryLineRequest) *domain.Journal {
	j, err := s.createJournal(s.today(), lines...)
	s.Require().NoError(err)
	return j
}

func (s *ledgerSuite) mustPosted(lines ...dto.EntryLineRequest) *domain.Journal {
	j := s.mustJournal(lines...)
	posted, err := s.svc.Journal.PostJournal(s.ctx, s.companyID, j.JournalID, s.userID)
	s.Require().NoError(err)
	return posted
}

func (s *ledgerSuite) updateSettings(req dto.UpdateSettingsRequest) *domain.GLSettings {
	settings, err := s.svc.Settings.UpdateSettings(s.ctx, s.companyID, req, s.userID)
	s.Require().NoError(err)
	return settings
}

func (s *ledgerSuite) journalStatus(journalID string) domain.JournalStatus {
	j, err := s.svc.Journal.GetJournalByID(s.ctx, s.companyID, journalID)
	s.Require().NoError(err)
	return j.Status
}

func (s *ledgerSuite) balanceOf(accountID string) decimal.Decimal {
	acc, err := s.svc.Account.GetAccountByID(s.ctx, s.companyID, accountID)
	s.Require().NoError(err)
	return acc.CurrentBalance
}

func (s *ledgerSuite) seedImportRows(rows ...domain.ImportRow) {
	for i := range rows {
		rows[i].RowID = uuid.NewString()
		rows[i].CompanyID = s.companyID
		rows[i].ImportID = "import-1"
		if rows[i].RowNumber == 0 {
			rows[i].RowNumber = i + 2
		}
		if rows[i].Date.IsZero() {
			rows[i].Date = s.today()
		}
	}
	s.Require().NoError(s.repos.ImportRowRepo.SaveImportRows(s.ctx, rows))
}

func importRow(account, split, name, amount string) domain.ImportRow {
	return domain.ImportRow{
		AccountName:  account,
		SplitAccount: split,
		Name:         name,
		Amount:       decimal.RequireFromString(amount),
	}
}

func ptr[T any](v T) *T {
	return &v
}
