package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow is a row of the gl_import_rows table.
type ImportRow struct {
	RowID        string              `db:"row_id"`
	CompanyID    string              `db:"company_id"`
	ImportID     string              `db:"import_id"`
	RowNumber    int                 `db:"row_number"`
	Date         time.Time           `db:"entry_date"`
	AccountName  string              `db:"account_name"`
	SplitAccount string              `db:"split_account"`
	Name         string              `db:"name"`
	Type         string              `db:"entry_type"`
	Amount       decimal.Decimal     `db:"amount"`
	Balance      decimal.NullDecimal `db:"balance"`
	Description  *string             `db:"description"`
	Reference    *string             `db:"reference"`
	CreatedAt    time.Time           `db:"created_at"`
	CreatedBy    string              `db:"created_by"`
}
