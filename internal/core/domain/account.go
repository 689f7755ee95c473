package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account is an entry in a company's chart of accounts.
type Account struct {
	AccountID      string          `json:"accountID"`
	CompanyID      string          `json:"companyID"`
	AccountNumber  string          `json:"accountNumber"`
	FullName       string          `json:"fullName"`
	AccountType    AccountType     `json:"accountType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // written only by the balance calculator
	IsActive       bool            `json:"isActive"`
	AuditFields
}
