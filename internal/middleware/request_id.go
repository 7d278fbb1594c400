package middleware

import (
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const RequestIDHeader = "X-Request-Id"

// NewRequestIDMiddleware sets requestID on the context for each request,
// reusing the caller's X-Request-Id when present.
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			var err error
			id, err = gonanoid.New(12)
			if err != nil {
				id = "req-unknown"
			}
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
