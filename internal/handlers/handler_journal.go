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

// journalHandler handles HTTP requests related to journals and their lines.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	analytics      *analytics.Client
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade, client *analytics.Client) *journalHandler {
	return &journalHandler{
		journalService: journalService,
		analytics:      client,
	}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, client *analytics.Client) {
	h := newJournalHandler(journalService, client)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journal_id", h.getJournal)
		journals.PATCH("/:journal_id", h.updateJournal)
		journals.POST("/:journal_id/lines", h.addLine)
		journals.DELETE("/:journal_id/lines/:line_id", h.deleteLine)
		journals.POST("/:journal_id/post", h.postJournal)
		journals.POST("/:journal_id/cancel", h.cancelJournal)
		journals.POST("/:journal_id/reverse", h.reverseJournal)
	}
}

// createJournal godoc
// @Summary Create a journal
// @Description Creates a Draft journal with its lines and allocates the next journal number
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal body dto.CreateJournalRequest true "Journal header and lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid journal structure"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Referenced account not found"
// @Failure 422 {object} handlers.ErrorResponse "Posting period closed"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateJournal")
		return
	}

	logger.Info("Received request to create journal", slog.Int("line_count", len(req.Lines)))

	journal, err := h.journalService.CreateJournal(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created successfully",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal by ID
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal_id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Journal not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to get journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{journal_id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	_, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), companyID, c.Param("journal_id"))
	if err != nil {
		respondError(c, err, "Failed to get journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Lists journals newest first using token-based pagination
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Maximum number of journals" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, CANCELLED)
// @Param   batchID query string false "Filter by batch"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list journals"
// @Security BearerAuth
// @Router /companies/{company_id}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	_, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListJournals query")
		return
	}

	journals, nextToken, err := h.journalService.ListJournals(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalsResponse{
		Journals:  dto.ToJournalResponses(journals),
		NextToken: nextToken,
	})
}

// updateJournal godoc
// @Summary Update a journal
// @Description Edits the date or memo and optionally replaces all lines. Posted journals are editable only while unlocked.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal_id path string true "Journal ID"
// @Param   journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid journal structure"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Journal not found"
// @Failure 409 {object} handlers.ErrorResponse "Journal locked"
// @Failure 422 {object} handlers.ErrorResponse "Unbalanced journal or closed period"
// @Failure 500 {object} handlers.ErrorResponse "Failed to update journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{journal_id} [patch]
func (h *journalHandler) updateJournal(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateJournal")
		return
	}
	journalID := c.Param("journal_id")

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), companyID, journalID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update journal")
		return
	}

	logger.Info("Journal updated successfully", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// addLine godoc
// @Summary Add a line to a journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal_id path string true "Journal ID"
// @Param   line body dto.EntryLineRequest true "Entry line"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid line"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Journal or account not found"
// @Failure 409 {object} handlers.ErrorResponse "Journal locked"
// @Failure 500 {object} handlers.ErrorResponse "Failed to add line"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{journal_id}/lines [post]
func (h *journalHandler) addLine(c *gin.Context) {
	userID, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.EntryLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddLine")
		return
	}

	journal, err := h.journalService.AddLine(c.Request.Context(), companyID, c.Param("journal_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add line")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// deleteLine godoc
// @Summary Delete a line from a journal
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal_id path string true "Journal ID"
// @Param   line_id path string true "Line ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} handlers.ErrorResponse "Journal would have fewer than two lines"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Journal or line not found"
// @Failure 409 {object} handlers.ErrorResponse "Journal locked"
// @Failure 500 {object} handlers.ErrorResponse "Failed to delete line"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{journal_id}/lines/{line_id} [delete]
func (h *journalHandler) deleteLine(c *gin.Context) {
	userID, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	journal, err := h.journalService.DeleteLine(c.Request.Context(), companyID, c.Param("journal_id"), c.Param("line_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to delete line")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// postJournal godoc
// @Summary Post a journal
// @Description Moves a balanced Draft journal to Posted
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal_id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Journal not found"
// @Failure 409 {object} handlers.ErrorResponse "Journal is not a Draft"
// @Failure 422 {object} handlers.ErrorResponse "Unbalanced journal or closed period"
// @Failure 500 {object} handlers.ErrorResponse "Failed to post journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{journal_id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	journalID := c.Param("journal_id")

	journal, err := h.journalService.PostJournal(c.Request.Context(), companyID, journalID, userID)
	if err != nil {
		respondError(c, err, "Failed to post journal")
		return
	}

	logger.Info("Journal posted", slog.String("journal_id", journalID))
	middleware.PosthogEvent(c, h.analytics, "journal_posted", map[string]any{
		"company_id": companyID,
		"journal_id": journalID,
	})
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// cancelJournal godoc
// @Summary Cancel a journal
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal_id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Journal not found"
// @Failure 409 {object} handlers.ErrorResponse "Journal is not a Draft"
// @Failure 500 {object} handlers.ErrorResponse "Failed to cancel journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{journal_id}/cancel [post]
func (h *journalHandler) cancelJournal(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	journalID := c.Param("journal_id")

	journal, err := h.journalService.CancelJournal(c.Request.Context(), companyID, journalID, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel journal")
		return
	}

	logger.Info("Journal cancelled", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates and posts a journal with every line's debit and credit swapped
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal_id path string true "Journal ID"
// @Param   reversal body dto.ReverseJournalRequest false "Optional date and memo of the reversal"
// @Success 201 {object} dto.JournalResponse "The reversing journal"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Journal not found"
// @Failure 409 {object} handlers.ErrorResponse "Journal is not Posted or already reversed"
// @Failure 422 {object} handlers.ErrorResponse "Posting period closed"
// @Failure 500 {object} handlers.ErrorResponse "Failed to reverse journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{journal_id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.ReverseJournalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err, "ReverseJournal")
			return
		}
	}
	journalID := c.Param("journal_id")

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), companyID, journalID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to reverse journal")
		return
	}

	logger.Info("Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversing_journal_id", reversal.JournalID))
	middleware.PosthogEvent(c, h.analytics, "journal_reversed", map[string]any{
		"company_id": companyID,
		"journal_id": journalID,
	})
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}
