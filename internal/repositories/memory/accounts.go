package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type accountRepository struct {
	a access
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(_ context.Context, companyID, accountID string) (*domain.Account, error) {
	var found *domain.Account
	r.a.read(func(st *state) {
		if acc, ok := st.accounts[accountID]; ok && acc.CompanyID == companyID {
			found = &acc
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *accountRepository) FindAccountByNumber(_ context.Context, companyID, accountNumber string) (*domain.Account, error) {
	var found *domain.Account
	r.a.read(func(st *state) {
		for _, acc := range st.accounts {
			if acc.CompanyID == companyID && acc.AccountNumber == accountNumber {
				found = &acc
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *accountRepository) FindAccountsByIDs(_ context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	r.a.read(func(st *state) {
		for _, id := range accountIDs {
			if acc, ok := st.accounts[id]; ok && acc.CompanyID == companyID {
				result[id] = acc
			}
		}
	})
	return result, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	all, _ := r.ListAllAccounts(ctx, companyID)
	return page(all, limit, offset), nil
}

func (r *accountRepository) ListAllAccounts(_ context.Context, companyID string) ([]domain.Account, error) {
	var result []domain.Account
	r.a.read(func(st *state) {
		for _, acc := range st.accounts {
			if acc.CompanyID == companyID {
				result = append(result, acc)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].AccountNumber < result[j].AccountNumber })
	return result, nil
}

func (r *accountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.accounts[account.AccountID]; ok {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		if numberTaken(st, account) {
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r *accountRepository) UpdateAccount(_ context.Context, account domain.Account) error {
	return r.a.write(func(st *state) error {
		existing, ok := st.accounts[account.AccountID]
		if !ok || existing.CompanyID != account.CompanyID {
			return apperrors.ErrNotFound
		}
		if numberTaken(st, account) {
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
		existing.AccountNumber = account.AccountNumber
		existing.FullName = account.FullName
		existing.IsActive = account.IsActive
		existing.LastUpdatedAt = account.LastUpdatedAt
		existing.LastUpdatedBy = account.LastUpdatedBy
		st.accounts[account.AccountID] = existing
		return nil
	})
}

func (r *accountRepository) DeactivateAccount(_ context.Context, companyID, accountID string, userID string, now time.Time) error {
	return r.a.write(func(st *state) error {
		acc, ok := st.accounts[accountID]
		if !ok || acc.CompanyID != companyID {
			return apperrors.ErrNotFound
		}
		acc.IsActive = false
		acc.Touch(userID, now)
		st.accounts[accountID] = acc
		return nil
	})
}

func (r *accountRepository) SetAccountBalances(_ context.Context, companyID string, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	return r.a.write(func(st *state) error {
		for id, balance := range balances {
			acc, ok := st.accounts[id]
			if !ok || acc.CompanyID != companyID {
				return fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
			}
			acc.CurrentBalance = balance
			acc.Touch(userID, now)
			st.accounts[id] = acc
		}
		return nil
	})
}

func numberTaken(st *state, account domain.Account) bool {
	for _, other := range st.accounts {
		if other.CompanyID == account.CompanyID && other.AccountNumber == account.AccountNumber && other.AccountID != account.AccountID {
			return true
		}
	}
	return false
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
