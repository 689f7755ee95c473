package mapping

import (
	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/models"
)

// ToModelAccountMapping converts a domain AccountMapping to a model AccountMapping
func ToModelAccountMapping(d domain.AccountMapping) models.AccountMapping {
	return models.AccountMapping{
		MappingID:      d.MappingID,
		CompanyID:      d.CompanyID,
		GLAccountName:  d.GLAccountName,
		GLFieldType:    string(d.GLFieldType),
		ChartAccountID: d.ChartAccountID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountMapping converts a model AccountMapping to a domain AccountMapping
func ToDomainAccountMapping(m models.AccountMapping) domain.AccountMapping {
	return domain.AccountMapping{
		MappingID:      m.MappingID,
		CompanyID:      m.CompanyID,
		GLAccountName:  m.GLAccountName,
		GLFieldType:    domain.GLFieldType(m.GLFieldType),
		ChartAccountID: m.ChartAccountID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountMappingSlice converts a slice of model AccountMappings to domain AccountMappings
func ToDomainAccountMappingSlice(ms []models.AccountMapping) []domain.AccountMapping {
	ds := make([]domain.AccountMapping, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountMapping(m)
	}
	return ds
}
