package dto

import "github.com/SscSPs/gl_backend/internal/core/domain"

// Recalculation modes accepted by the balances endpoint.
const (
	RecalcModeSimple   = "simple"
	RecalcModeMappings = "mappings"
)

// RecalculateParams selects how import rows are resolved.
type RecalculateParams struct {
	Mode string `form:"mode,default=mappings" binding:"oneof=simple mappings"`
}

// SimpleRecalculationResponse is returned for mode=simple.
type SimpleRecalculationResponse struct {
	AccountsUpdated int `json:"accountsUpdated"`
	TotalEntries    int `json:"totalEntries"`
}

// ToRecalculationResponse shapes the result for the requested mode.
func ToRecalculationResponse(mode string, r *domain.RecalculationResult) any {
	if mode == RecalcModeSimple {
		return SimpleRecalculationResponse{AccountsUpdated: r.AccountsUpdated, TotalEntries: r.TotalEntries}
	}
	return r
}
