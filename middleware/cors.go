package middleware

import (
	"net/http"
	"os"
	"strings"

	"realty-api/pkg/appenv"

	"github.com/gin-gonic/gin"
)

// CORS sets cross-origin headers. Outside production any origin is allowed
// for convenience; in production only origins listed in the comma-separated
// ALLOWED_ORIGINS variable are reflected back.
func CORS() gin.HandlerFunc {
	isProd := appenv.IsProduction() || gin.Mode() == gin.ReleaseMode

	allowed := map[string]struct{}{}
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}

	const methods = "GET, OPTIONS"
	const headers = "Origin, Content-Type, Authorization"

	return func(c *gin.Context) {
		c.Header("Vary", "Origin")

		if !isProd {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
		} else if origin := c.Request.Header.Get("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", methods)
				c.Header("Access-Control-Allow-Headers", headers)
			}
		}

		if c.Request.Method == http.MethodOptions {
			// Preflight. When the origin is not allowed the headers above
			// are absent and the browser blocks the call.
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
