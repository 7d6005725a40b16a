package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck answers uptime probes. Unauthenticated and cheap on purpose;
// it does not touch either data source.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "realty-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
