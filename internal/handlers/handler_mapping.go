package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

func newMappingHandler(ms portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{mappingService: ms}
}

func registerMappingRoutes(rg *gin.RouterGroup, ms portssvc.MappingSvcFacade) {
	h := newMappingHandler(ms)

	mappings := rg.Group("/mappings")
	{
		mappings.GET("", h.listMappings)
		mappings.POST("", h.createMapping)
		mappings.DELETE("/:mapping_id", h.deleteMapping)
		mappings.GET("/unmatched", h.findUnmatched)
		mappings.POST("/auto", h.autoMap)
	}
}

// listMappings godoc
// @Summary List label mappings
// @Tags mappings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.ListMappingsResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list mappings"
// @Security BearerAuth
// @Router /companies/{company_id}/mappings [get]
func (h *mappingHandler) listMappings(c *gin.Context) {
	_, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	mappings, err := h.mappingService.ListMappings(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list mappings")
		return
	}
	c.JSON(http.StatusOK, dto.ListMappingsResponse{Mappings: dto.ToMappingResponses(mappings)})
}

// createMapping godoc
// @Summary Map an imported label to an account
// @Description Creates the mapping, or repoints it when the label and field type are already mapped
// @Tags mappings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   mapping body dto.CreateMappingRequest true "Mapping"
// @Success 201 {object} dto.MappingResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid label or field type"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create mapping"
// @Security BearerAuth
// @Router /companies/{company_id}/mappings [post]
func (h *mappingHandler) createMapping(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateMapping")
		return
	}

	mapping, err := h.mappingService.CreateMapping(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create mapping")
		return
	}

	logger.Info("Mapping saved",
		slog.String("mapping_id", mapping.MappingID),
		slog.String("field_type", string(mapping.GLFieldType)))
	c.JSON(http.StatusCreated, dto.ToMappingResponse(mapping))
}

// deleteMapping godoc
// @Summary Delete a label mapping
// @Tags mappings
// @Param   company_id path string true "Company ID"
// @Param   mapping_id path string true "Mapping ID"
// @Success 204 "No Content"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Mapping not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to delete mapping"
// @Security BearerAuth
// @Router /companies/{company_id}/mappings/{mapping_id} [delete]
func (h *mappingHandler) deleteMapping(c *gin.Context) {
	userID, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	if err := h.mappingService.DeleteMapping(c.Request.Context(), companyID, c.Param("mapping_id"), userID); err != nil {
		respondError(c, err, "Failed to delete mapping")
		return
	}
	c.Status(http.StatusNoContent)
}

// findUnmatched godoc
// @Summary List unmatched import labels
// @Description Groups imported labels that resolve to no account, by field type then total amount
// @Tags mappings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {array} dto.UnmatchedEntryResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to find unmatched entries"
// @Security BearerAuth
// @Router /companies/{company_id}/mappings/unmatched [get]
func (h *mappingHandler) findUnmatched(c *gin.Context) {
	_, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	unmatched, err := h.mappingService.FindUnmatchedEntries(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to find unmatched entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnmatchedEntryResponses(unmatched))
}

// autoMap godoc
// @Summary Auto-map obvious labels
// @Description Maps account labels that match exactly one active account by name or number
// @Tags mappings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.AutoMapResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to auto-map labels"
// @Security BearerAuth
// @Router /companies/{company_id}/mappings/auto [post]
func (h *mappingHandler) autoMap(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}

	result, err := h.mappingService.AutoMapObviousMatches(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err, "Failed to auto-map labels")
		return
	}

	logger.Info("Auto-mapping finished",
		slog.Int("mappings_created", result.MappingsCreated),
		slog.Int("ambiguous", len(result.Ambiguous)))

	resp := dto.ToAutoMapResponse(result)
	for i, a := range result.Ambiguous {
		resp.Ambiguous[i].Code = errorCode(a.Err)
	}
	c.JSON(http.StatusOK, resp)
}
