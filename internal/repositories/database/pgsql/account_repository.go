package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backend/internal/models"
	"github.com/SscSPs/gl_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, company_id, account_number, full_name, account_type,
		current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements portsrepo.AccountRepositoryFacade using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new account repository bound to db.
func newPgxAccountRepository(db querier) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to scan account")
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves a specific account of a company.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_id = $2;`
	return r.findOne(ctx, query, companyID, accountID)
}

// FindAccountByNumber retrieves an account by its company-unique number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_number = $2;`
	return r.findOne(ctx, query, companyID, accountNumber)
}

// FindAccountsByIDs retrieves the accounts of a company among accountIDs, keyed by id.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_id = ANY($2);`
	accounts, err := r.collect(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	return result, nil
}

// ListAccounts retrieves a page of accounts ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE company_id = $1
		ORDER BY account_number
		LIMIT $2 OFFSET $3;`
	return r.collect(ctx, query, companyID, limit, offset)
}

// ListAllAccounts retrieves the full chart of accounts of a company.
func (r *PgxAccountRepository) ListAllAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY account_number;`
	return r.collect(ctx, query, companyID)
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.DB.Exec(ctx, query,
		m.AccountID, m.CompanyID, m.AccountNumber, m.FullName, m.AccountType,
		m.CurrentBalance, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// UpdateAccount updates an existing account's number, name and active flag.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET account_number = $3, full_name = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND account_id = $2;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.CompanyID, m.AccountID, m.AccountNumber, m.FullName, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	return expectOneRow(tag, "account", m.AccountID)
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, companyID, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND account_id = $2;
	`
	tag, err := r.DB.Exec(ctx, query, companyID, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	return expectOneRow(tag, "account", accountID)
}

// SetAccountBalances overwrites current_balance of the given accounts in one round trip.
func (r *PgxAccountRepository) SetAccountBalances(ctx context.Context, companyID string, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	batch := &pgx.Batch{}
	query := `
		UPDATE accounts
		SET current_balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND account_id = $2;
	`
	for accountID, balance := range balances {
		batch.Queue(query, companyID, accountID, balance, now, userID)
	}
	if err := sendBatch(ctx, r.DB, batch); err != nil {
		slog.WarnContext(ctx, "Balance update batch failed", "company_id", companyID, "accounts", len(balances), "error", err)
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}
