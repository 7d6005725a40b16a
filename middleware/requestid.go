package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID gives every request a stable X-Request-ID. A client-supplied id
// is propagated as-is, otherwise a fresh UUIDv4 is assigned. The value is
// echoed in the response header and stored in the gin context under
// "requestId" so log lines can reference it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("requestId", id)
		c.Next()
	}
}
