package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/gl_backend/internal/platform/analytics"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls.
func PosthogMiddleware(client *analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Enabled() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/companies/:company_id/journals" -> "api_v1_companies_:company_id_journals"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if companyID := c.Param("company_id"); companyID != "" {
			props["company_id"] = companyID
		}

		client.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a named ledger event (e.g. "batch_posted") for the calling user.
func PosthogEvent(c *gin.Context, client *analytics.Client, eventName string, properties map[string]any) {
	if !client.Enabled() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path
	client.Enqueue(userID, eventName, properties)
}
