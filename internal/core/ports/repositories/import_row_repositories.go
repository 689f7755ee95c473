package repositories

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// ImportRowRepositoryFacade stores raw imported general-ledger rows.
type ImportRowRepositoryFacade interface {
	// SaveImportRows inserts rows.
	SaveImportRows(ctx context.Context, rows []domain.ImportRow) error

	// ListImportRows retrieves every imported row of a company in import order.
	ListImportRows(ctx context.Context, companyID string) ([]domain.ImportRow, error)
}
