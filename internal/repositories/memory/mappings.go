package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
)

type mappingRepository struct {
	a access
}

var _ portsrepo.MappingRepositoryFacade = (*mappingRepository)(nil)

func (r *mappingRepository) FindMappingByID(_ context.Context, companyID, mappingID string) (*domain.AccountMapping, error) {
	var found *domain.AccountMapping
	r.a.read(func(st *state) {
		if m, ok := st.mappings[mappingID]; ok && m.CompanyID == companyID {
			found = &m
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *mappingRepository) ListMappings(_ context.Context, companyID string) ([]domain.AccountMapping, error) {
	var result []domain.AccountMapping
	r.a.read(func(st *state) {
		for _, m := range st.mappings {
			if m.CompanyID == companyID {
				result = append(result, m)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].GLFieldType != result[j].GLFieldType {
			return result[i].GLFieldType < result[j].GLFieldType
		}
		return result[i].GLAccountName < result[j].GLAccountName
	})
	return result, nil
}

func (r *mappingRepository) UpsertMapping(_ context.Context, mapping domain.AccountMapping) (*domain.AccountMapping, error) {
	var stored domain.AccountMapping
	err := r.a.write(func(st *state) error {
		for id, existing := range st.mappings {
			if existing.CompanyID == mapping.CompanyID && existing.Key() == mapping.Key() {
				existing.ChartAccountID = mapping.ChartAccountID
				existing.LastUpdatedAt = mapping.LastUpdatedAt
				existing.LastUpdatedBy = mapping.LastUpdatedBy
				st.mappings[id] = existing
				stored = existing
				return nil
			}
		}
		st.mappings[mapping.MappingID] = mapping
		stored = mapping
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *mappingRepository) DeleteMapping(_ context.Context, companyID, mappingID string) error {
	return r.a.write(func(st *state) error {
		m, ok := st.mappings[mappingID]
		if !ok || m.CompanyID != companyID {
			return apperrors.ErrNotFound
		}
		delete(st.mappings, mappingID)
		return nil
	})
}
