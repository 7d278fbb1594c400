// Package handlers wires the RSVP and music surfaces onto gin engines.
package handlers

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/imrishuroy/wedding-site-api/internal/middleware"
)

// RouterConfig is the shared engine setup for one surface.
type RouterConfig struct {
	Log          *zap.Logger
	CORSOrigin   string
	AllowMethods string
	MaxBodyBytes int64
	// ErrorKey is the JSON key error bodies use on this surface.
	ErrorKey string
}

// NewRouter returns an engine with the shared middleware chain and /health.
// Headers runs before the body limiter so OPTIONS never touches the body.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	r.Use(
		ginzap.RecoveryWithZap(cfg.Log, true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(cfg.Log, &ginzap.Config{
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			UTC:        true,
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}
				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}
				return fields
			},
		}),
		middleware.Headers(cfg.CORSOrigin, cfg.AllowMethods),
		middleware.BodySizeLimiter(cfg.MaxBodyBytes, cfg.ErrorKey),
	)

	// GET /health		-> liveness
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
