package dto

import (
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMappingRequest maps an imported label to a chart account.
type CreateMappingRequest struct {
	GLAccountName  string             `json:"glAccountName" binding:"required,max=255"`
	GLFieldType    domain.GLFieldType `json:"glFieldType" binding:"required"`
	ChartAccountID string             `json:"chartAccountID" binding:"required"`
}

// MappingResponse defines the data returned for a mapping.
type MappingResponse struct {
	MappingID      string             `json:"mappingID"`
	GLAccountName  string             `json:"glAccountName"`
	GLFieldType    domain.GLFieldType `json:"glFieldType"`
	ChartAccountID string             `json:"chartAccountID"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
}

// ListMappingsResponse wraps the mappings of a company.
type ListMappingsResponse struct {
	Mappings []MappingResponse `json:"mappings"`
}

// UnmatchedEntryResponse is one unmatched label group. Only the key of the
// group's own field type carries the label; the other two are empty.
type UnmatchedEntryResponse struct {
	AccountName  string          `json:"accountName"`
	SplitAccount string          `json:"splitAccount"`
	Name         string          `json:"name"`
	EntryCount   int             `json:"entryCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// ToUnmatchedEntryResponses converts the groups, keeping their order.
func ToUnmatchedEntryResponses(entries []domain.UnmatchedEntry) []UnmatchedEntryResponse {
	res := make([]UnmatchedEntryResponse, 0, len(entries))
	for _, e := range entries {
		r := UnmatchedEntryResponse{EntryCount: e.EntryCount, TotalAmount: e.TotalAmount}
		switch e.FieldType {
		case domain.FieldAccountName:
			r.AccountName = e.Label
		case domain.FieldSplitAccount:
			r.SplitAccount = e.Label
		case domain.FieldName:
			r.Name = e.Label
		}
		res = append(res, r)
	}
	return res
}

// AmbiguousLabelResponse is a label auto-mapping refused to guess for.
type AmbiguousLabelResponse struct {
	Label               string   `json:"label"`
	CandidateAccountIDs []string `json:"candidateAccountIDs"`
	Error               string   `json:"error,omitempty"`
	Code                string   `json:"code,omitempty"`
}

// AutoMapResponse reports the outcome of an auto-mapping run.
type AutoMapResponse struct {
	MappingsCreated int                      `json:"mappingsCreated"`
	Ambiguous       []AmbiguousLabelResponse `json:"ambiguous"`
}

// ToAutoMapResponse converts a domain.AutoMapResult. Codes are left for the caller.
func ToAutoMapResponse(r *domain.AutoMapResult) AutoMapResponse {
	res := AutoMapResponse{MappingsCreated: r.MappingsCreated, Ambiguous: make([]AmbiguousLabelResponse, 0, len(r.Ambiguous))}
	for _, a := range r.Ambiguous {
		item := AmbiguousLabelResponse{Label: a.Label, CandidateAccountIDs: a.CandidateAccountIDs}
		if a.Err != nil {
			item.Error = a.Err.Error()
		}
		res.Ambiguous = append(res.Ambiguous, item)
	}
	return res
}

// ToMappingResponse converts a domain.AccountMapping.
func ToMappingResponse(m *domain.AccountMapping) MappingResponse {
	return MappingResponse{
		MappingID:      m.MappingID,
		GLAccountName:  m.GLAccountName,
		GLFieldType:    m.GLFieldType,
		ChartAccountID: m.ChartAccountID,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToMappingResponses converts a slice of domain.AccountMapping.
func ToMappingResponses(ms []domain.AccountMapping) []MappingResponse {
	res := make([]MappingResponse, len(ms))
	for i, m := range ms {
		res[i] = ToMappingResponse(&m)
	}
	return res
}
