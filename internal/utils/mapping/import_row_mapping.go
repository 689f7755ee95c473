package mapping

import (
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelImportRow converts a domain ImportRow to a model ImportRow
func ToModelImportRow(d domain.ImportRow) models.ImportRow {
	m := models.ImportRow{
		RowID:        d.RowID,
		CompanyID:    d.CompanyID,
		ImportID:     d.ImportID,
		RowNumber:    d.RowNumber,
		Date:         domain.DateOnly(d.Date),
		AccountName:  d.AccountName,
		SplitAccount: d.SplitAccount,
		Name:         d.Name,
		Type:         d.Type,
		Amount:       d.Amount,
		Description:  d.Description,
		Reference:    d.Reference,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
	if d.Balance != nil {
		m.Balance = decimal.NewNullDecimal(*d.Balance)
	}
	return m
}

// ToDomainImportRow converts a model ImportRow to a domain ImportRow
func ToDomainImportRow(m models.ImportRow) domain.ImportRow {
	d := domain.ImportRow{
		RowID:        m.RowID,
		CompanyID:    m.CompanyID,
		ImportID:     m.ImportID,
		RowNumber:    m.RowNumber,
		Date:         domain.DateOnly(m.Date),
		AccountName:  m.AccountName,
		SplitAccount: m.SplitAccount,
		Name:         m.Name,
		Type:         m.Type,
		Amount:       m.Amount,
		Description:  m.Description,
		Reference:    m.Reference,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
	if m.Balance.Valid {
		balance := m.Balance.Decimal
		d.Balance = &balance
	}
	return d
}

// ToDomainImportRowSlice converts a slice of model ImportRows to a slice of domain ImportRows
func ToDomainImportRowSlice(ms []models.ImportRow) []domain.ImportRow {
	ds := make([]domain.ImportRow, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainImportRow(m)
	}
	return ds
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOnly(*t)
	return &d
}
