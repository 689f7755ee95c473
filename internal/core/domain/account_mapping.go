package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SplitMarkerLabel is the label import files use for internal split lines.
const SplitMarkerLabel = "-Split-"

// EntryKind classifies a raw import label.
type EntryKind int

const (
	// EntryKindBlank is an empty label.
	EntryKindBlank EntryKind = iota
	// EntryKindAccount is a label that should resolve to a chart account.
	EntryKindAccount
	// EntryKindSplitMarker is a transaction split marker; it is never postable.
	EntryKindSplitMarker
)

// ClassifyLabel parses a raw label into its EntryKind.
func ClassifyLabel(label string) EntryKind {
	trimmed := strings.TrimSpace(label)
	switch {
	case trimmed == "":
		return EntryKindBlank
	case trimmed == SplitMarkerLabel:
		return EntryKindSplitMarker
	default:
		return EntryKindAccount
	}
}

// GLFieldType names which label column of an import row a mapping applies to.
type GLFieldType string

const (
	FieldAccountName  GLFieldType = "account_name"
	FieldSplitAccount GLFieldType = "split_account"
	FieldName         GLFieldType = "name"
)

// AllFieldTypes lists the label columns in scan order.
var AllFieldTypes = []GLFieldType{FieldAccountName, FieldSplitAccount, FieldName}

// IsValid reports whether f is a known field type.
func (f GLFieldType) IsValid() bool {
	switch f {
	case FieldAccountName, FieldSplitAccount, FieldName:
		return true
	}
	return false
}

// AccountMapping ties a raw imported label to a chart account.
type AccountMapping struct {
	MappingID      string      `json:"mappingID"`
	CompanyID      string      `json:"companyID"`
	GLAccountName  string      `json:"glAccountName"`
	GLFieldType    GLFieldType `json:"glFieldType"`
	ChartAccountID string      `json:"chartAccountID"`
	AuditFields
}

// MappingKey is the uniqueness key of a mapping within a company.
type MappingKey struct {
	Label     string
	FieldType GLFieldType
}

// Key returns the mapping's uniqueness key.
func (m AccountMapping) Key() MappingKey {
	return MappingKey{Label: m.GLAccountName, FieldType: m.GLFieldType}
}

// UnmatchedEntry is a group of import rows whose label has no account.
type UnmatchedEntry struct {
	FieldType   GLFieldType     `json:"fieldType"`
	Label       string          `json:"label"`
	EntryCount  int             `json:"entryCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// AmbiguousLabel reports a label that matched several accounts during auto-mapping.
type AmbiguousLabel struct {
	Label               string   `json:"label"`
	CandidateAccountIDs []string `json:"candidateAccountIDs"`
	// Err is the AmbiguousMapping ledger error for this label.
	Err error `json:"-"`
}

// AutoMapResult summarizes an auto-mapping run.
type AutoMapResult struct {
	MappingsCreated int              `json:"mappingsCreated"`
	Ambiguous       []AmbiguousLabel `json:"ambiguous"`
}

// RecalculationResult summarizes a balance recalculation.
type RecalculationResult struct {
	AccountsUpdated int       `json:"accountsUpdated"`
	TotalEntries    int       `json:"totalEntries"`
	MappedEntries   int       `json:"mappedEntries"`
	CalculatedAt    time.Time `json:"calculatedAt"`
}
