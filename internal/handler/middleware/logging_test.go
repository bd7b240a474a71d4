//go:build unit

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"course-reservation/internal/domain/user"
	"course-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", TimeZone: "UTC", TimeFormat: "15:04:05"}).Slog()

	router := gin.New()
	router.Use(LoggingMiddleware(logger))
	router.POST("/courses/:id/reserve", func(c *gin.Context) {
		SetIdentity(c, user.Identity{UserID: "s1", Role: user.RoleStudent})
		c.JSON(http.StatusConflict, gin.H{"success": false})
	})

	t.Run("keeps an incoming request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodPost, "/courses/CS101/reserve", nil)
		req.Header.Set(requestIDHeader, "gw-123")
		req.Header.Set(IdempotencyKeyHeader, "attempt-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "gw-123", rec.Header().Get(requestIDHeader))
		out := buf.String()
		assert.Contains(t, out, "request_id=gw-123")
		assert.Contains(t, out, "idempotency_key=attempt-1")
		assert.Contains(t, out, "user_id=s1")
		assert.Contains(t, out, "level=WARN")
	})

	t.Run("generates one when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/courses/CS101/reserve", nil))
		assert.Len(t, rec.Header().Get(requestIDHeader), 36)
	})
}
