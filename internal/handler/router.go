package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"course-reservation/internal/domain/user"
	"course-reservation/internal/handler/api"
	"course-reservation/internal/handler/middleware"
	"course-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Course      *api.CourseHandler
	Ledger      *api.LedgerHandler
	AuthMw      *middleware.AuthMiddleware
	Idempotency *middleware.IdempotencyMiddleware
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireInstructor := h.AuthMw.RequireRoleAtLeast(user.RoleInstructor)
	idempotent := h.Idempotency.Handle()

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/auth"), []route{
			{Method: http.MethodGet, Path: "/verify", Handler: h.Auth.Verify},
		})

		courses := apiGroup.Group("/courses")
		{
			addRoutes(courses, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Course.Get},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Course.Availability},
				{Method: http.MethodGet, Path: "/:id/prerequisites/:studentId", Handler: h.Course.Prerequisites},
			})

			authRequired := courses.Group("")
			authRequired.Use(h.AuthMw.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Course.Publish, Mw: []gin.HandlerFunc{requireInstructor}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Course.ChangeStatus, Mw: []gin.HandlerFunc{requireInstructor}},
				{Method: http.MethodPost, Path: "/:id/reserve", Handler: h.Ledger.Reserve, Mw: []gin.HandlerFunc{idempotent}},
				{Method: http.MethodPost, Path: "/:id/release", Handler: h.Ledger.Release, Mw: []gin.HandlerFunc{idempotent}},
				{Method: http.MethodPost, Path: "/:id/enrollments", Handler: h.Ledger.ReserveForEnrollment, Mw: []gin.HandlerFunc{idempotent}},
				{Method: http.MethodPost, Path: "/:id/cancellations", Handler: h.Ledger.ReleaseForCancellation, Mw: []gin.HandlerFunc{idempotent}},
			})
		}

		students := apiGroup.Group("/students")
		students.Use(h.AuthMw.RequireAuth(), requireInstructor)
		addRoutes(students, []route{
			{Method: http.MethodPost, Path: "/:studentId/completions", Handler: h.Course.RecordCompletion},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "courses",
	})
}

// route middleware runs as part of the gin chain so c.Next() reaches the handler
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
