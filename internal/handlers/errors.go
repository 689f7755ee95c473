package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code,omitempty"`
	EntityID string   `json:"entityID,omitempty"`
	Related  []string `json:"related,omitempty"`
}

type errorStatus struct {
	kind   error
	code   string
	status int
}

// Checked in order; the first kind err matches wins.
var errorStatuses = []errorStatus{
	{apperrors.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
	{apperrors.ErrForbidden, "FORBIDDEN", http.StatusForbidden},
	{apperrors.ErrInvalidJournalStructure, "INVALID_JOURNAL_STRUCTURE", http.StatusBadRequest},
	{apperrors.ErrEmptyLine, "EMPTY_LINE", http.StatusBadRequest},
	{apperrors.ErrValidation, "VALIDATION_ERROR", http.StatusBadRequest},
	{apperrors.ErrUnbalancedJournal, "UNBALANCED_JOURNAL", http.StatusUnprocessableEntity},
	{apperrors.ErrBatchHasUnbalancedJournals, "BATCH_HAS_UNBALANCED_JOURNALS", http.StatusUnprocessableEntity},
	{apperrors.ErrEmptyBatch, "EMPTY_BATCH", http.StatusUnprocessableEntity},
	{apperrors.ErrPeriodClosed, "PERIOD_CLOSED", http.StatusUnprocessableEntity},
	{apperrors.ErrAmbiguousMapping, "AMBIGUOUS_MAPPING", http.StatusUnprocessableEntity},
	{apperrors.ErrJournalLocked, "JOURNAL_LOCKED", http.StatusConflict},
	{apperrors.ErrInvalidStateTransition, "INVALID_STATE_TRANSITION", http.StatusConflict},
	{apperrors.ErrBatchApprovalRequired, "BATCH_APPROVAL_REQUIRED", http.StatusConflict},
	{apperrors.ErrDuplicateSequenceNumber, "DUPLICATE_SEQUENCE_NUMBER", http.StatusConflict},
	{apperrors.ErrDuplicate, "DUPLICATE", http.StatusConflict},
}

func classify(err error) (errorStatus, bool) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.kind) {
			return es, true
		}
	}
	return errorStatus{}, false
}

// errorCode returns the response code for a ledger error, or "" for other errors.
func errorCode(err error) string {
	es, _ := classify(err)
	return es.code
}

// respondError maps err to a status code and writes the error body.
// Unknown and 5xx failures are logged and hidden behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if es, ok := classify(err); ok {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.String("code", es.code))
		c.JSON(es.status, ErrorResponse{
			Error:    err.Error(),
			Code:     es.code,
			EntityID: apperrors.EntityIDOf(err),
			Related:  apperrors.RelatedOf(err),
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}
	if errors.As(err, &appErr) && appErr.Code == http.StatusBadGateway {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: appErr.Message})
		return
	}

	logger.Error(fallback, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

// respondBindError writes a 400 for a request that failed binding or validation.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "VALIDATION_ERROR"})
}

// requestActor returns the calling user, the company in the path and a logger carrying both.
// It writes a 401 and returns ok=false when no user is authenticated.
func requestActor(c *gin.Context) (userID, companyID string, logger *slog.Logger, ok bool) {
	logger = middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", "", logger, false
	}
	companyID = c.Param("company_id")
	return userID, companyID, logger.With(slog.String("company_id", companyID)), true
}
