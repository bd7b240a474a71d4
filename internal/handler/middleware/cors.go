package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"course-reservation/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// NewCORSMiddleware always lets browsers send Idempotency-Key and read the
// replay and request id headers, whatever CORS_ALLOW_HEADERS says.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, IdempotencyKeyHeader),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, IdempotentReplayedHeader, requestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	logger.Info("cors middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"allow_headers", corsCfg.AllowHeaders,
		"expose_headers", corsCfg.ExposeHeaders,
	)
	return cors.New(corsCfg)
}

func withHeaders(configured []string, required ...string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(existing string) bool { return strings.EqualFold(existing, h) }) {
			out = append(out, h)
		}
	}
	return out
}
