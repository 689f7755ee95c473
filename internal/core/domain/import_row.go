package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow is one raw general-ledger line loaded from an external file.
// Amount is signed: positive is a debit, negative a credit.
type ImportRow struct {
	RowID        string           `json:"rowID"`
	CompanyID    string           `json:"companyID"`
	ImportID     string           `json:"importID"`
	RowNumber    int              `json:"rowNumber"`
	Date         time.Time        `json:"date"`
	AccountName  string           `json:"accountName"`
	SplitAccount string           `json:"splitAccount"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Balance      *decimal.Decimal `json:"balance,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Reference    *string          `json:"reference,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	CreatedBy    string           `json:"createdBy"`
}

// Label is a trimmed label together with its parsed kind.
type Label struct {
	Text string
	Kind EntryKind
}

// LabelFor returns the row's label for the given column.
func (r ImportRow) LabelFor(field GLFieldType) Label {
	var raw string
	switch field {
	case FieldAccountName:
		raw = r.AccountName
	case FieldSplitAccount:
		raw = r.SplitAccount
	case FieldName:
		raw = r.Name
	}
	text := strings.TrimSpace(raw)
	return Label{Text: text, Kind: ClassifyLabel(text)}
}

// IsDebit reports whether the row books to the debit side.
func (r ImportRow) IsDebit() bool {
	return r.Amount.IsPositive()
}

// ImportResult summarizes one general-ledger import.
type ImportResult struct {
	ImportID      string   `json:"importID"`
	Success       bool     `json:"success"`
	InsertedCount int      `json:"insertedCount"`
	SkippedCount  int      `json:"skippedCount"`
	ErrorCount    int      `json:"errorCount"`
	Errors        []string `json:"errors"`
}
