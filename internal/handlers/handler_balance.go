package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func registerBalanceRoutes(rg *gin.RouterGroup, bs portssvc.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: bs}
	rg.POST("/balances/recalculate", h.recalculate)
}

// recalculate godoc
// @Summary Recalculate account balances
// @Description Rebuilds every account balance from posted journals and, in mappings mode, mapped import rows
// @Tags balances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   mode query string false "Recalculation mode" Enums(simple, mappings) default(mappings)
// @Success 200 {object} domain.RecalculationResult
// @Failure 400 {object} handlers.ErrorResponse "Invalid mode"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "A recalculation is already running"
// @Failure 500 {object} handlers.ErrorResponse "Failed to recalculate balances"
// @Security BearerAuth
// @Router /companies/{company_id}/balances/recalculate [post]
func (h *balanceHandler) recalculate(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var params dto.RecalculateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Recalculate query")
		return
	}

	result, err := h.balanceService.RecalculateBalances(c.Request.Context(), companyID, params.Mode == dto.RecalcModeMappings, userID)
	if err != nil {
		respondError(c, err, "Failed to recalculate balances")
		return
	}

	logger.Info("Balances recalculated",
		slog.String("mode", params.Mode),
		slog.Int("accounts_updated", result.AccountsUpdated),
		slog.Int("total_entries", result.TotalEntries))
	c.JSON(http.StatusOK, dto.ToRecalculationResponse(params.Mode, result))
}
