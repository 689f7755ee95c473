package services

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// BalanceSvcFacade recomputes account balances from the full entry history.
type BalanceSvcFacade interface {
	// RecalculateBalances rewrites current_balance of every account of the company.
	// withMappings also resolves import rows through the mapping table.
	RecalculateBalances(ctx context.Context, companyID string, withMappings bool, userID string) (*domain.RecalculationResult, error)
}
