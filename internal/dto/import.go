package dto

// ImportGeneralLedgerRequest points at the file to import.
type ImportGeneralLedgerRequest struct {
	FileURL string `json:"fileURL" binding:"required"`
}
