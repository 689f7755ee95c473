package repositories

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// MappingReader defines read operations for account mappings
type MappingReader interface {
	// FindMappingByID retrieves a mapping.
	FindMappingByID(ctx context.Context, companyID, mappingID string) (*domain.AccountMapping, error)

	// ListMappings retrieves every mapping of a company ordered by field type then label.
	ListMappings(ctx context.Context, companyID string) ([]domain.AccountMapping, error)
}

// MappingWriter defines write operations for account mappings
type MappingWriter interface {
	// UpsertMapping inserts a mapping or repoints the existing one with the same
	// (company, label, field type) key, returning the stored row.
	UpsertMapping(ctx context.Context, mapping domain.AccountMapping) (*domain.AccountMapping, error)

	// DeleteMapping removes a mapping.
	DeleteMapping(ctx context.Context, companyID, mappingID string) error
}

// MappingRepositoryFacade combines all mapping-related repository interfaces
type MappingRepositoryFacade interface {
	MappingReader
	MappingWriter
}
