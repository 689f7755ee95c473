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

type batchHandler struct {
	batchService portssvc.BatchSvcFacade
	analytics    *analytics.Client
}

func newBatchHandler(batchService portssvc.BatchSvcFacade, client *analytics.Client) *batchHandler {
	return &batchHandler{
		batchService: batchService,
		analytics:    client,
	}
}

// registerBatchRoutes registers the batch workflow routes.
func registerBatchRoutes(rg *gin.RouterGroup, batchService portssvc.BatchSvcFacade, client *analytics.Client) {
	h := newBatchHandler(batchService, client)

	batches := rg.Group("/batches")
	{
		batches.POST("", h.createBatch)
		batches.GET("", h.listBatches)
		batches.GET("/:batch_id", h.getBatch)
		batches.POST("/:batch_id/journals", h.addJournal)
		batches.DELETE("/:batch_id/journals/:journal_id", h.removeJournal)
		batches.POST("/:batch_id/ready", h.markReady)
		batches.POST("/:batch_id/post", h.postBatch)
		batches.POST("/:batch_id/cancel", h.cancelBatch)
	}
}

// createBatch godoc
// @Summary Create a batch
// @Description Opens a Draft batch and allocates the next batch number
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batch body dto.CreateBatchRequest true "Batch details"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create batch"
// @Security BearerAuth
// @Router /companies/{company_id}/batches [post]
func (h *batchHandler) createBatch(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateBatch")
		return
	}

	batch, err := h.batchService.CreateBatch(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create batch")
		return
	}

	logger.Info("Batch created", slog.String("batch_id", batch.BatchID), slog.Int64("batch_number", batch.BatchNumber))
	c.JSON(http.StatusCreated, dto.ToBatchResponse(batch))
}

// getBatch godoc
// @Summary Get a batch by ID
// @Description Returns the batch with its member journals
// @Tags batches
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batch_id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Batch not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to get batch"
// @Security BearerAuth
// @Router /companies/{company_id}/batches/{batch_id} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	_, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	batch, err := h.batchService.GetBatchByID(c.Request.Context(), companyID, c.Param("batch_id"))
	if err != nil {
		respondError(c, err, "Failed to get batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// listBatches godoc
// @Summary List batches
// @Tags batches
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Maximum number of batches" default(50)
// @Param   offset query int false "Number of batches to skip" default(0)
// @Param   status query string false "Filter by status" Enums(DRAFT, READY, POSTED, CANCELLED)
// @Success 200 {object} dto.ListBatchesResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list batches"
// @Security BearerAuth
// @Router /companies/{company_id}/batches [get]
func (h *batchHandler) listBatches(c *gin.Context) {
	_, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var params dto.ListBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListBatches query")
		return
	}

	batches, err := h.batchService.ListBatches(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "Failed to list batches")
		return
	}
	c.JSON(http.StatusOK, dto.ListBatchesResponse{Batches: dto.ToBatchResponses(batches)})
}

// addJournal godoc
// @Summary Add a journal to a batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batch_id path string true "Batch ID"
// @Param   journal body dto.AddJournalToBatchRequest true "Journal to add"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Batch or journal not found"
// @Failure 409 {object} handlers.ErrorResponse "Batch is not a Draft or journal not eligible"
// @Failure 500 {object} handlers.ErrorResponse "Failed to add journal to batch"
// @Security BearerAuth
// @Router /companies/{company_id}/batches/{batch_id}/journals [post]
func (h *batchHandler) addJournal(c *gin.Context) {
	userID, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.AddJournalToBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddJournalToBatch")
		return
	}

	batch, err := h.batchService.AddJournalToBatch(c.Request.Context(), companyID, c.Param("batch_id"), req.JournalID, userID)
	if err != nil {
		respondError(c, err, "Failed to add journal to batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// removeJournal godoc
// @Summary Remove a journal from a batch
// @Tags batches
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batch_id path string true "Batch ID"
// @Param   journal_id path string true "Journal ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Batch or journal not found"
// @Failure 409 {object} handlers.ErrorResponse "Batch is not a Draft"
// @Failure 500 {object} handlers.ErrorResponse "Failed to remove journal from batch"
// @Security BearerAuth
// @Router /companies/{company_id}/batches/{batch_id}/journals/{journal_id} [delete]
func (h *batchHandler) removeJournal(c *gin.Context) {
	userID, companyID, _, ok := requestActor(c)
	if !ok {
		return
	}

	batch, err := h.batchService.RemoveJournalFromBatch(c.Request.Context(), companyID, c.Param("batch_id"), c.Param("journal_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to remove journal from batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// markReady godoc
// @Summary Mark a batch ready
// @Description Validates that every member journal balances and moves the batch to Ready
// @Tags batches
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batch_id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Batch not found"
// @Failure 409 {object} handlers.ErrorResponse "Invalid state transition"
// @Failure 422 {object} handlers.ErrorResponse "Empty batch or unbalanced journals"
// @Failure 500 {object} handlers.ErrorResponse "Failed to mark batch ready"
// @Security BearerAuth
// @Router /companies/{company_id}/batches/{batch_id}/ready [post]
func (h *batchHandler) markReady(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	batchID := c.Param("batch_id")

	batch, err := h.batchService.MarkReady(c.Request.Context(), companyID, batchID, userID)
	if err != nil {
		respondError(c, err, "Failed to mark batch ready")
		return
	}

	logger.Info("Batch marked ready", slog.String("batch_id", batchID))
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// postBatch godoc
// @Summary Post a batch
// @Description Posts every Draft member journal atomically and moves the batch to Posted
// @Tags batches
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batch_id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Batch not found"
// @Failure 409 {object} handlers.ErrorResponse "Invalid state transition or approval required"
// @Failure 422 {object} handlers.ErrorResponse "Unbalanced journals or closed period"
// @Failure 500 {object} handlers.ErrorResponse "Failed to post batch"
// @Security BearerAuth
// @Router /companies/{company_id}/batches/{batch_id}/post [post]
func (h *batchHandler) postBatch(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	batchID := c.Param("batch_id")

	batch, err := h.batchService.PostBatch(c.Request.Context(), companyID, batchID, userID)
	if err != nil {
		respondError(c, err, "Failed to post batch")
		return
	}

	logger.Info("Batch posted", slog.String("batch_id", batchID), slog.Int("total_journals", batch.TotalJournals))
	middleware.PosthogEvent(c, h.analytics, "batch_posted", map[string]any{
		"company_id":     companyID,
		"batch_id":       batchID,
		"total_journals": batch.TotalJournals,
	})
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// cancelBatch godoc
// @Summary Cancel a batch
// @Description Cancels a Draft or Ready batch and releases its journals back to standalone Drafts
// @Tags batches
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batch_id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Batch not found"
// @Failure 409 {object} handlers.ErrorResponse "Invalid state transition"
// @Failure 500 {object} handlers.ErrorResponse "Failed to cancel batch"
// @Security BearerAuth
// @Router /companies/{company_id}/batches/{batch_id}/cancel [post]
func (h *batchHandler) cancelBatch(c *gin.Context) {
	userID, companyID, logger, ok := requestActor(c)
	if !ok {
		return
	}
	batchID := c.Param("batch_id")

	batch, err := h.batchService.CancelBatch(c.Request.Context(), companyID, batchID, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel batch")
		return
	}

	logger.Info("Batch cancelled", slog.String("batch_id", batchID))
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}
