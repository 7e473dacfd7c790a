package api

import (
	"currency_wizard/internal/middleware" // Context keys
	"net/http"                            // HTTP status codes
	"strconv"                             // String conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const (
	defaultPageSize = 20  // Default page size
	maxPageSize     = 100 // Largest page a client may request
)

// HistoryHandler lists the logged-in user's conversions, most recent first, one page at a time
func HistoryHandler(svc Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey) // Set by the auth middleware
		page := 1                                       // Default page
		pageSize := defaultPageSize
		// If page exists in query
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= maxPageSize {
				pageSize = v // Set page size if valid
			}
		}

		// Paging happens in the store; pages past the end come back empty
		result, err := svc.HistoryPage(c.Request.Context(), username, page, pageSize)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,
				"page":     page,
				"error":    err.Error(),
			}).Error("Failed to load history")
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
