package components

import (
	"log/slog"

	"course-reservation/internal/handler"
	"course-reservation/internal/handler/api"
	"course-reservation/internal/handler/middleware"
	"course-reservation/internal/pkg/config"
	"course-reservation/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCourseHandler,
		api.NewLedgerHandler,
		middleware.NewAuthMiddleware,
		func(store shared.IdempotencyStore, cfg config.Config, logger *slog.Logger) *middleware.IdempotencyMiddleware {
			return middleware.NewIdempotencyMiddleware(store, cfg.Redis.IdempotencyTTL, logger)
		},
	),
	fx.Invoke(registerRoutes),
)

type routerParams struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Logger      *slog.Logger
	Auth        *api.AuthHandler
	Course      *api.CourseHandler
	Ledger      *api.LedgerHandler
	AuthMw      *middleware.AuthMiddleware
	Idempotency *middleware.IdempotencyMiddleware
}

func registerRoutes(p routerParams) {
	handler.NewRouter(p.Engine, p.Config, p.Logger, handler.Handlers{
		Auth:        p.Auth,
		Course:      p.Course,
		Ledger:      p.Ledger,
		AuthMw:      p.AuthMw,
		Idempotency: p.Idempotency,
	})
}
