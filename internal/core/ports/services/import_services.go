package services

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// ImportSvcFacade loads raw general-ledger rows from an external file.
type ImportSvcFacade interface {
	ImportGeneralLedger(ctx context.Context, companyID string, fileURL string, userID string) (*domain.ImportResult, error)
}
