package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/core/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

// --- Implement mock methods for AccountRepositoryFacade ---

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAllAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, companyID, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountBalances(ctx context.Context, companyID string, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, balances, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockAccountRepository
	service   portssvc.AccountSvcFacade
	now       time.Time
	companyID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.companyID = uuid.NewString()
	suite.service = services.NewAccountService(suite.mockRepo, services.WithClock(func() time.Time { return suite.now }))
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber: "1100",
		FullName:      "Accounts Receivable",
		AccountType:   domain.Asset,
	}

	// Expect SaveAccount to be called once
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, suite.companyID, req, creatorUserID)

	// Assertions
	suite.Require().NoError(err)
	suite.Require().NotNil(createdAccount)
	suite.NotEmpty(createdAccount.AccountID)
	suite.Equal(suite.companyID, createdAccount.CompanyID)
	suite.Equal(req.AccountNumber, createdAccount.AccountNumber)
	suite.Equal(req.FullName, createdAccount.FullName)
	suite.Equal(req.AccountType, createdAccount.AccountType)
	suite.True(createdAccount.CurrentBalance.IsZero())
	suite.True(createdAccount.IsActive)
	suite.Equal(creatorUserID, createdAccount.CreatedBy)
	suite.Equal(creatorUserID, createdAccount.LastUpdatedBy)
	suite.Equal(suite.now, createdAccount.CreatedAt)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{AccountNumber: "9", FullName: "Odd", AccountType: "CONTRA"}

	createdAccount, err := suite.service.CreateAccount(ctx, suite.companyID, req, "user")

	suite.Nil(createdAccount)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{AccountNumber: "1000", FullName: "Cash again", AccountType: domain.Asset}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, suite.companyID, req, "user")

	suite.Nil(createdAccount)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{AccountNumber: "1200", FullName: "Inventory", AccountType: domain.Asset}
	expectedErr := assert.AnError // Simulate a repository error

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(expectedErr).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, suite.companyID, req, "user")

	suite.Require().Error(err)
	suite.Nil(createdAccount)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID() {
	ctx := context.Background()
	testID := uuid.NewString()
	expectedAccount := &domain.Account{
		AccountID:   testID,
		CompanyID:   suite.companyID,
		FullName:    "Found Account",
		AccountType: domain.Liability,
		IsActive:    true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, testID).Return(expectedAccount, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, "missing").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, "broken").Return(nil, assert.AnError).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.companyID, testID)
	suite.Require().NoError(err)
	suite.Equal(expectedAccount, account)

	account, err = suite.service.GetAccountByID(ctx, suite.companyID, "missing")
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	account, err = suite.service.GetAccountByID(ctx, suite.companyID, "broken")
	suite.Nil(account)
	suite.ErrorIs(err, assert.AnError)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_ClampsLimit() {
	ctx := context.Background()
	expectedAccounts := []domain.Account{
		{AccountID: uuid.NewString(), AccountNumber: "1000", IsActive: true},
		{AccountID: uuid.NewString(), AccountNumber: "2000", IsActive: true},
	}

	// Non-positive limits fall back to the default page size
	suite.mockRepo.On("ListAccounts", ctx, suite.companyID, 50, 0).Return(expectedAccounts, nil).Once()
	suite.mockRepo.On("ListAccounts", ctx, suite.companyID, 500, 10).Return([]domain.Account{}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.companyID, 0, -5)
	suite.Require().NoError(err)
	suite.Equal(expectedAccounts, accounts)

	accounts, err = suite.service.ListAccounts(ctx, suite.companyID, 10000, 10)
	suite.Require().NoError(err)
	suite.Empty(accounts)
	suite.NotNil(accounts)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount() {
	ctx := context.Background()
	testID := uuid.NewString()
	updaterUserID := uuid.NewString()
	initialTime := suite.now.Add(-time.Hour)

	originalAccount := &domain.Account{
		AccountID:     testID,
		CompanyID:     suite.companyID,
		AccountNumber: "6100",
		FullName:      "Travel",
		AccountType:   domain.Expense,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields("creator", initialTime),
	}
	newName := "Travel & Meals"

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, testID).Return(originalAccount, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountID == testID &&
			acc.FullName == newName &&
			acc.AccountNumber == "6100" &&
			acc.IsActive &&
			acc.LastUpdatedBy == updaterUserID &&
			acc.LastUpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	updatedAccount, err := suite.service.UpdateAccount(ctx, suite.companyID, testID, dto.UpdateAccountRequest{FullName: &newName}, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(newName, updatedAccount.FullName)
	suite.Equal("creator", updatedAccount.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_DuplicateNumber() {
	ctx := context.Background()
	testID := uuid.NewString()
	number := "1000"

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, testID).Return(&domain.Account{AccountID: testID, CompanyID: suite.companyID}, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, testID, dto.UpdateAccountRequest{AccountNumber: &number}, "user")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	testID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("DeactivateAccount", ctx, suite.companyID, testID, userID, suite.now).Return(nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, suite.companyID, "missing", userID, suite.now).Return(apperrors.ErrNotFound).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, suite.companyID, "broken", userID, suite.now).Return(assert.AnError).Once()

	suite.NoError(suite.service.DeactivateAccount(ctx, suite.companyID, testID, userID))
	suite.ErrorIs(suite.service.DeactivateAccount(ctx, suite.companyID, "missing", userID), apperrors.ErrNotFound)
	suite.ErrorIs(suite.service.DeactivateAccount(ctx, suite.companyID, "broken", userID), assert.AnError)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
