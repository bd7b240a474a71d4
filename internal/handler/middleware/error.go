package middleware

import (
	"log/slog"
	"net/http"

	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

func internalErrorResponse() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Kind = string(errs.KindInternal)
	resp.Error.Message = "Internal server error"
	return resp
}

// ErrorHandler renders the newest public error attached by httperr. Errors
// that never reached a public envelope are logged and answered with 500.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			last := c.Errors.Last()
			level := slog.LevelDebug
			if errs.KindOf(last.Err) == errs.KindInternal {
				level = slog.LevelError
			}
			logger.Log(c.Request.Context(), level, "request error",
				"request_id", GetRequestID(c),
				"kind", errs.KindOf(last.Err),
				"error", last.Err,
			)
		}

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, internalErrorResponse())
	}
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("recovered from panic",
					"panic", r,
					"request_id", GetRequestID(c),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalErrorResponse())
			}
		}()
		c.Next()
	}
}
