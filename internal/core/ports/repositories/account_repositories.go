package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account of a company.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its company-unique number.
	FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts of a company among accountIDs, keyed by id.
	// Unknown ids are simply absent from the result.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by account number.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)

	// ListAllAccounts retrieves the full chart of accounts of a company.
	ListAllAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A taken account number yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's number, name and active flag.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, companyID, accountID string, userID string, now time.Time) error

	// SetAccountBalances overwrites current_balance of the given accounts.
	SetAccountBalances(ctx context.Context, companyID string, balances map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
