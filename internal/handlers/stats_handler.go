package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/api/internal/services"
)

// AdminStats returns the flat analytics report the admin dashboard consumes.
// The payload shape is the report itself, not the usual envelope, since the
// dashboard reads the fields top-level.
func AdminStats(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := ss.AdminReport(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
