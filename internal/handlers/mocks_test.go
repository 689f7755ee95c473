package handlers_test

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	args := m.Called(ctx, companyID, accountID, userID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) journal(args mock.Arguments) (*domain.Journal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, companyID string, journalID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, journalID))
}
func (m *MockJournalService) ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, companyID, params)
	var journals []domain.Journal
	if args.Get(0) != nil {
		journals = args.Get(0).([]domain.Journal)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return journals, next, args.Error(2)
}
func (m *MockJournalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, req, userID))
}
func (m *MockJournalService) UpdateJournal(ctx context.Context, companyID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, journalID, req, userID))
}
func (m *MockJournalService) AddLine(ctx context.Context, companyID string, journalID string, req dto.EntryLineRequest, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, journalID, req, userID))
}
func (m *MockJournalService) DeleteLine(ctx context.Context, companyID string, journalID string, lineID string, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, journalID, lineID, userID))
}
func (m *MockJournalService) PostJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, journalID, userID))
}
func (m *MockJournalService) CancelJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, journalID, userID))
}
func (m *MockJournalService) ReverseJournal(ctx context.Context, companyID string, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, companyID, journalID, req, userID))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock BatchService ---
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) batch(args mock.Arguments) (*domain.Batch, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) GetBatchByID(ctx context.Context, companyID string, batchID string) (*domain.Batch, error) {
	return m.batch(m.Called(ctx, companyID, batchID))
}
func (m *MockBatchService) ListBatches(ctx context.Context, companyID string, params dto.ListBatchesParams) ([]domain.Batch, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}
func (m *MockBatchService) CreateBatch(ctx context.Context, companyID string, req dto.CreateBatchRequest, userID string) (*domain.Batch, error) {
	return m.batch(m.Called(ctx, companyID, req, userID))
}
func (m *MockBatchService) AddJournalToBatch(ctx context.Context, companyID string, batchID string, journalID string, userID string) (*domain.Batch, error) {
	return m.batch(m.Called(ctx, companyID, batchID, journalID, userID))
}
func (m *MockBatchService) RemoveJournalFromBatch(ctx context.Context, companyID string, batchID string, journalID string, userID string) (*domain.Batch, error) {
	return m.batch(m.Called(ctx, companyID, batchID, journalID, userID))
}
func (m *MockBatchService) MarkReady(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error) {
	return m.batch(m.Called(ctx, companyID, batchID, userID))
}
func (m *MockBatchService) PostBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error) {
	return m.batch(m.Called(ctx, companyID, batchID, userID))
}
func (m *MockBatchService) CancelBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.Batch, error) {
	return m.batch(m.Called(ctx, companyID, batchID, userID))
}

var _ portssvc.BatchSvcFacade = (*MockBatchService)(nil)

// --- Mock MappingService ---
type MockMappingService struct {
	mock.Mock
}

func (m *MockMappingService) FindUnmatchedEntries(ctx context.Context, companyID string) ([]domain.UnmatchedEntry, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnmatchedEntry), args.Error(1)
}
func (m *MockMappingService) CreateMapping(ctx context.Context, companyID string, req dto.CreateMappingRequest, userID string) (*domain.AccountMapping, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}
func (m *MockMappingService) AutoMapObviousMatches(ctx context.Context, companyID string, userID string) (*domain.AutoMapResult, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoMapResult), args.Error(1)
}
func (m *MockMappingService) ListMappings(ctx context.Context, companyID string) ([]domain.AccountMapping, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}
func (m *MockMappingService) DeleteMapping(ctx context.Context, companyID string, mappingID string, userID string) error {
	return m.Called(ctx, companyID, mappingID, userID).Error(0)
}

var _ portssvc.MappingSvcFacade = (*MockMappingService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) RecalculateBalances(ctx context.Context, companyID string, withMappings bool, userID string) (*domain.RecalculationResult, error) {
	args := m.Called(ctx, companyID, withMappings, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecalculationResult), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context, companyID string, userID string) (*domain.GLSettings, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLSettings), args.Error(1)
}
func (m *MockSettingsService) UpdateSettings(ctx context.Context, companyID string, req dto.UpdateSettingsRequest, userID string) (*domain.GLSettings, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLSettings), args.Error(1)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

// --- Mock ImportService ---
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportGeneralLedger(ctx context.Context, companyID string, fileURL string, userID string) (*domain.ImportResult, error) {
	args := m.Called(ctx, companyID, fileURL, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

var _ portssvc.ImportSvcFacade = (*MockImportService)(nil)
