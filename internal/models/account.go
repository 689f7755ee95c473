package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	CompanyID      string          `db:"company_id"`
	AccountNumber  string          `db:"account_number"`
	FullName       string          `db:"full_name"`
	AccountType    AccountType     `db:"account_type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
