package memory

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
)

type importRowRepository struct {
	a access
}

var _ portsrepo.ImportRowRepositoryFacade = (*importRowRepository)(nil)

func (r *importRowRepository) SaveImportRows(_ context.Context, rows []domain.ImportRow) error {
	return r.a.write(func(st *state) error {
		st.importRows = append(st.importRows, rows...)
		return nil
	})
}

func (r *importRowRepository) ListImportRows(_ context.Context, companyID string) ([]domain.ImportRow, error) {
	var result []domain.ImportRow
	r.a.read(func(st *state) {
		for _, row := range st.importRows {
			if row.CompanyID == companyID {
				result = append(result, row)
			}
		}
	})
	return result, nil
}
