package services

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
)

// MappingSvcFacade resolves raw imported labels to chart accounts.
type MappingSvcFacade interface {
	// FindUnmatchedEntries groups import labels that resolve to no account.
	FindUnmatchedEntries(ctx context.Context, companyID string) ([]domain.UnmatchedEntry, error)

	// CreateMapping upserts a label mapping.
	CreateMapping(ctx context.Context, companyID string, req dto.CreateMappingRequest, userID string) (*domain.AccountMapping, error)

	// AutoMapObviousMatches maps account_name labels that match exactly one account.
	AutoMapObviousMatches(ctx context.Context, companyID string, userID string) (*domain.AutoMapResult, error)

	ListMappings(ctx context.Context, companyID string) ([]domain.AccountMapping, error)
	DeleteMapping(ctx context.Context, companyID string, mappingID string, userID string) error
}
