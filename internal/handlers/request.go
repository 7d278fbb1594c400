package handlers

import (
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/wedding-site-api/internal/songs"
)

const unknownSource = "unknown"

// sourceIP prefers the address API Gateway saw over whatever gin derives
// from the proxied request.
func sourceIP(c *gin.Context) string {
	if rc, ok := core.GetAPIGatewayV2ContextFromContext(c.Request.Context()); ok && rc.HTTP.SourceIP != "" {
		return rc.HTTP.SourceIP
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return unknownSource
}

func requestMeta(c *gin.Context) songs.Meta {
	return songs.Meta{
		SourceIP:  sourceIP(c),
		UserAgent: c.Request.UserAgent(),
	}
}

func requestID(c *gin.Context) string {
	return c.GetString("requestID")
}
