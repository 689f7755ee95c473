package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/SscSPs/gl_backend/internal/middleware"
	"github.com/SscSPs/gl_backend/internal/platform/analytics"
	"github.com/gin-gonic/gin"
)

type importHandler struct {
	importService portssvc.ImportSvcFacade
	analytics     *analytics.Client
}

func registerImportRoutes(rg *gin.RouterGroup, is portssvc.ImportSvcFacade, client *analytics.Client) {
	h := &importHandler{importService: is, analytics: client}
	rg.POST("/imports", h.importGeneralLedger)
}

// importGeneralLedger godoc
// @Summary Import a general-ledger export
// @Description Loads CSV or XLSX rows from an https or gs:// location. Bad rows are reported, not fatal.
// @Tags imports
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   import body dto.ImportGeneralLedgerRequest true "File location"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} handlers.ErrorResponse "Unsupported location, format or header"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 502 {object} handlers.ErrorResponse "File could not be read"
// @Failure 500 {object} handlers.ErrorResponse "Failed to import general ledger"
// @Security BearerAuth
// @Router /companies/{company_id}/imports [post]
func (h *importHandler) importGeneralLedger(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.ImportGeneralLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ImportGeneralLedger")
		return
	}

	result, err := h.importService.ImportGeneralLedger(c.Request.Context(), companyID, req.FileURL, userID)
	if err != nil {
		respondError(c, err, "Failed to import general ledger")
		return
	}

	logger.Info("General ledger imported",
		slog.String("import_id", result.ImportID),
		slog.Int("inserted", result.InsertedCount),
		slog.Int("errors", result.ErrorCount))
	middleware.PosthogEvent(c, h.analytics, "gl_imported", map[string]any{
		"company_id": companyID,
		"inserted":   result.InsertedCount,
		"errors":     result.ErrorCount,
	})
	c.JSON(http.StatusOK, result)
}
