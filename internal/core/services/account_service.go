package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/SscSPs/gl_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new chart of accounts service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, opts ...Option) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBase(opts),
		accountRepo: repo,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	account := domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		AccountNumber:  req.AccountNumber,
		FullName:       req.FullName,
		AccountType:    req.AccountType,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogFailure(ctx, err, "Failed to save account",
			slog.String("company_id", companyID),
			slog.String("account_number", req.AccountNumber))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, pagination.ClampLimit(limit), offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.FullName != nil {
		account.FullName = *req.FullName
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.Touch(userID, s.Now())

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, companyID, accountID, userID, s.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account " + accountID)
		}
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}
