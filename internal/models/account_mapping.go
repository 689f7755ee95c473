package models

// AccountMapping is a row of the account_mappings table.
type AccountMapping struct {
	MappingID      string `db:"mapping_id"`
	CompanyID      string `db:"company_id"`
	GLAccountName  string `db:"gl_account_name"`
	GLFieldType    string `db:"gl_field_type"`
	ChartAccountID string `db:"chart_account_id"`
	AuditFields
}
