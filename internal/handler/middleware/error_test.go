//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/handler/middleware"
	"course-reservation/internal/pkg/config"
	"course-reservation/internal/pkg/errs"
	"course-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.CustomRecovery(discardLogger()), middleware.ErrorHandler(discardLogger()))
	return router
}

func TestErrorHandler(t *testing.T) {
	router := newErrorRouter()
	router.GET("/missing", func(c *gin.Context) {
		httperr.Abort(c, errs.Wrap(errs.ErrNotFound, "course CS999"))
	})
	router.GET("/private", func(c *gin.Context) {
		_ = c.Error(errs.New("disk on fire"))
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	t.Run("public error keeps its kind", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/missing", nil, "")
		httptest.AssertErrorKind(t, rec, http.StatusNotFound, "NotFound")
	})

	t.Run("private error becomes a generic 500", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, "")
		env := httptest.AssertErrorKind(t, rec, http.StatusInternalServerError, "Internal")
		assert.NotContains(t, env.Error.Message, "disk")
	})

	t.Run("panic is recovered", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/panic", nil, "")
		httptest.AssertErrorKind(t, rec, http.StatusInternalServerError, "Internal")
	})
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins:  []string{"http://localhost:3000"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}, discardLogger()))
	router.POST("/courses/:id/reserve", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight allows the idempotency header", func(t *testing.T) {
		req := nethttptest.NewRequest(http.MethodOptions, "/courses/CS101/reserve", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
	})

	t.Run("replay and request id headers are exposed", func(t *testing.T) {
		req := nethttptest.NewRequest(http.MethodPost, "/courses/CS101/reserve", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)

		exposed := rec.Header().Get("Access-Control-Expose-Headers")
		assert.Contains(t, exposed, "Idempotent-Replayed")
		assert.Contains(t, exposed, "X-Request-Id")
	})
}
