// Package middleware contains the gin middleware shared by the HTTP surfaces
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowedHeaders is the request header set advertised to browsers.
const AllowedHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"

// Headers stamps the fixed response header set on every response and answers
// OPTIONS preflights with an empty 200 before any route runs.
func Headers(origin, methods string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Type", "application/json")
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Headers", AllowedHeaders)
		h.Set("Access-Control-Allow-Methods", methods)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
