package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mappingService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewMappingService creates the account mapping resolver.
func NewMappingService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.MappingSvcFacade {
	return &mappingService{
		BaseService: newBase(opts),
		repos:       repos,
	}
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

func (s *mappingService) FindUnmatchedEntries(ctx context.Context, companyID string) ([]domain.UnmatchedEntry, error) {
	var result []domain.UnmatchedEntry
	err := s.repos.TxManager.WithTx(ctx, readTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		resolver, rows, err := loadResolver(ctx, repos, companyID)
		if err != nil {
			return err
		}

		groups := make(map[domain.MappingKey]*domain.UnmatchedEntry)
		for _, row := range rows {
			for _, field := range domain.AllFieldTypes {
				label := row.LabelFor(field)
				if _, _, ok := resolver.resolve(field, label, true); ok || label.Kind != domain.EntryKindAccount {
					continue
				}
				key := domain.MappingKey{Label: label.Text, FieldType: field}
				g, ok := groups[key]
				if !ok {
					g = &domain.UnmatchedEntry{FieldType: field, Label: label.Text, TotalAmount: decimal.Zero}
					groups[key] = g
				}
				g.EntryCount++
				g.TotalAmount = g.TotalAmount.Add(row.Amount.Abs())
			}
		}

		result = make([]domain.UnmatchedEntry, 0, len(groups))
		for _, g := range groups {
			result = append(result, *g)
		}
		sort.Slice(result, func(i, j int) bool {
			fi := slices.Index(domain.AllFieldTypes, result[i].FieldType)
			fj := slices.Index(domain.AllFieldTypes, result[j].FieldType)
			if fi != fj {
				return fi < fj
			}
			return result[i].Label < result[j].Label
		})
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to find unmatched entries", slog.String("company_id", companyID))
		return nil, err
	}
	s.LogDebug(ctx, "Unmatched entries computed",
		slog.String("company_id", companyID),
		slog.Int("groups", len(result)))
	return result, nil
}

// loadResolver reads the chart of accounts, the mappings and the import rows of a company.
func loadResolver(ctx context.Context, repos portsrepo.Repositories, companyID string) (*labelResolver, []domain.ImportRow, error) {
	accounts, err := repos.AccountRepo.ListAllAccounts(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	mappings, err := repos.MappingRepo.ListMappings(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := repos.ImportRowRepo.ListImportRows(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	return newLabelResolver(accounts, mappings), rows, nil
}

func (s *mappingService) CreateMapping(ctx context.Context, companyID string, req dto.CreateMappingRequest, userID string) (*domain.AccountMapping, error) {
	label := strings.TrimSpace(req.GLAccountName)
	if !req.GLFieldType.IsValid() {
		return nil, fmt.Errorf("%w: unknown gl field type %q", apperrors.ErrValidation, req.GLFieldType)
	}
	switch domain.ClassifyLabel(label) {
	case domain.EntryKindBlank:
		return nil, fmt.Errorf("%w: label is blank", apperrors.ErrValidation)
	case domain.EntryKindSplitMarker:
		return nil, fmt.Errorf("%w: %s is a split marker and cannot be mapped", apperrors.ErrValidation, domain.SplitMarkerLabel)
	}

	var stored *domain.AccountMapping
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.AccountRepo.FindAccountByID(ctx, companyID, req.ChartAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewLedgerError(apperrors.ErrNotFound, req.ChartAccountID, "chart account not found")
			}
			return err
		}
		m, err := repos.MappingRepo.UpsertMapping(ctx, domain.AccountMapping{
			MappingID:      uuid.NewString(),
			CompanyID:      companyID,
			GLAccountName:  label,
			GLFieldType:    req.GLFieldType,
			ChartAccountID: req.ChartAccountID,
			AuditFields:    domain.NewAuditFields(userID, s.Now()),
		})
		stored = m
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create mapping",
			slog.String("company_id", companyID),
			slog.String("label", label))
		return nil, err
	}
	s.LogInfo(ctx, "Mapping saved",
		slog.String("mapping_id", stored.MappingID),
		slog.String("label", label),
		slog.String("field_type", string(stored.GLFieldType)))
	return stored, nil
}

// AutoMapObviousMatches maps account_name labels that name exactly one active
// account. Labels with several candidates are reported and left unmapped.
func (s *mappingService) AutoMapObviousMatches(ctx context.Context, companyID string, userID string) (*domain.AutoMapResult, error) {
	result := &domain.AutoMapResult{Ambiguous: []domain.AmbiguousLabel{}}
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		result.MappingsCreated = 0
		result.Ambiguous = result.Ambiguous[:0]

		accounts, err := repos.AccountRepo.ListAllAccounts(ctx, companyID)
		if err != nil {
			return err
		}
		mappings, err := repos.MappingRepo.ListMappings(ctx, companyID)
		if err != nil {
			return err
		}
		rows, err := repos.ImportRowRepo.ListImportRows(ctx, companyID)
		if err != nil {
			return err
		}
		resolver := newLabelResolver(accounts, mappings)

		seen := make(map[string]bool)
		var labels []string
		for _, row := range rows {
			label := row.LabelFor(domain.FieldAccountName)
			if label.Kind != domain.EntryKindAccount || seen[label.Text] {
				continue
			}
			seen[label.Text] = true
			if !resolver.hasMapping(domain.FieldAccountName, label.Text) {
				labels = append(labels, label.Text)
			}
		}
		sort.Strings(labels)

		now := s.Now()
		for _, label := range labels {
			candidates := autoMapCandidates(label, accounts)
			switch {
			case len(candidates) == 1:
				_, err := repos.MappingRepo.UpsertMapping(ctx, domain.AccountMapping{
					MappingID:      uuid.NewString(),
					CompanyID:      companyID,
					GLAccountName:  label,
					GLFieldType:    domain.FieldAccountName,
					ChartAccountID: candidates[0],
					AuditFields:    domain.NewAuditFields(userID, now),
				})
				if err != nil {
					return err
				}
				result.MappingsCreated++
			case len(candidates) > 1:
				ambiguous := apperrors.NewLedgerError(apperrors.ErrAmbiguousMapping, label,
					"%d candidate accounts", len(candidates))
				s.LogDebug(ctx, "Label left unmapped", slog.String("reason", ambiguous.Error()))
				result.Ambiguous = append(result.Ambiguous, domain.AmbiguousLabel{
					Label:               label,
					CandidateAccountIDs: candidates,
					Err:                 ambiguous,
				})
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Auto-mapping failed", slog.String("company_id", companyID))
		return nil, err
	}
	s.LogInfo(ctx, "Auto-mapping finished",
		slog.String("company_id", companyID),
		slog.Int("mappings_created", result.MappingsCreated),
		slog.Int("ambiguous", len(result.Ambiguous)))
	return result, nil
}

func (s *mappingService) ListMappings(ctx context.Context, companyID string) ([]domain.AccountMapping, error) {
	mappings, err := s.repos.MappingRepo.ListMappings(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list mappings", slog.String("company_id", companyID))
		return nil, err
	}
	return mappings, nil
}

func (s *mappingService) DeleteMapping(ctx context.Context, companyID string, mappingID string, userID string) error {
	err := s.repos.TxManager.WithTx(ctx, writeTx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.MappingRepo.FindMappingByID(ctx, companyID, mappingID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewLedgerError(apperrors.ErrNotFound, mappingID, "mapping not found")
			}
			return err
		}
		return repos.MappingRepo.DeleteMapping(ctx, companyID, mappingID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete mapping", slog.String("mapping_id", mappingID))
		return err
	}
	s.LogInfo(ctx, "Mapping deleted", slog.String("mapping_id", mappingID), slog.String("user_id", userID))
	return nil
}
