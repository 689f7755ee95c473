package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/importer"
	"github.com/google/uuid"
)

// LedgerFileReader reads and parses a general-ledger export.
type LedgerFileReader interface {
	Read(ctx context.Context, location string, maxRows int) (*importer.Parsed, error)
}

type importService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	reader  LedgerFileReader
	maxRows int
}

// NewImportService creates the general-ledger import pipeline.
func NewImportService(repos portsrepo.RepositoryProvider, reader LedgerFileReader, maxRows int, opts ...Option) portssvc.ImportSvcFacade {
	return &importService{
		BaseService: newBase(opts),
		repos:       repos,
		reader:      reader,
		maxRows:     maxRows,
	}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// ImportGeneralLedger loads every valid row of the file in one transaction.
// Rows that fail to parse are reported and do not stop the import.
func (s *importService) ImportGeneralLedger(ctx context.Context, companyID string, fileURL string, userID string) (*domain.ImportResult, error) {
	parsed, err := s.reader.Read(ctx, fileURL, s.maxRows)
	if err != nil {
		if isBadImportRequest(err) {
			s.LogDebug(ctx, "Rejected import file", slog.String("file_url", fileURL), slog.String("reason", err.Error()))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		s.LogError(ctx, err, "Failed to read import file", slog.String("file_url", fileURL))
		return nil, apperrors.NewAppError(http.StatusBadGateway, "failed to read import file", err)
	}

	importID := uuid.NewString()
	now := s.Now()
	rows := make([]domain.ImportRow, len(parsed.Rows))
	for i, row := range parsed.Rows {
		row.RowID = uuid.NewString()
		row.CompanyID = companyID
		row.ImportID = importID
		row.CreatedAt = now
		row.CreatedBy = userID
		rows[i] = row
	}

	if len(rows) > 0 {
		err = s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
			return repos.ImportRowRepo.SaveImportRows(ctx, rows)
		})
		if err != nil {
			s.LogError(ctx, err, "Failed to save import rows",
				slog.String("company_id", companyID),
				slog.Int("rows", len(rows)))
			return nil, err
		}
	}

	result := &domain.ImportResult{
		ImportID:      importID,
		Success:       len(parsed.Errors) == 0,
		InsertedCount: len(rows),
		SkippedCount:  parsed.Skipped,
		ErrorCount:    len(parsed.Errors),
		Errors:        parsed.Errors,
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}

	s.LogInfo(ctx, "General ledger imported",
		slog.String("company_id", companyID),
		slog.String("import_id", importID),
		slog.Int("inserted", result.InsertedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Int("errors", result.ErrorCount))
	return result, nil
}

func isBadImportRequest(err error) bool {
	return errors.Is(err, importer.ErrUnsupportedSource) ||
		errors.Is(err, importer.ErrUnsupportedFormat) ||
		errors.Is(err, importer.ErrMissingColumn) ||
		errors.Is(err, importer.ErrTooManyRows)
}
