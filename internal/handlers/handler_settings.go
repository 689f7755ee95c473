package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, ss portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: ss}
	rg.GET("/settings", h.getSettings)
	rg.PATCH("/settings", h.updateSettings)
}

// getSettings godoc
// @Summary Get ledger settings
// @Description Returns the company's ledger settings, creating the defaults on first access
// @Tags settings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.SettingsResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to get settings"
// @Security BearerAuth
// @Router /companies/{company_id}/settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	userID, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err, "Failed to get settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update ledger settings
// @Description Applies a partial update. Omitted fields are left unchanged.
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   settings body dto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid settings"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to update settings"
// @Security BearerAuth
// @Router /companies/{company_id}/settings [patch]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateSettings")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}

	logger.Info("Settings updated")
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
