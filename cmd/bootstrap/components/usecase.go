package components

import (
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/config"
	"course-reservation/internal/pkg/retry"
	"course-reservation/internal/usecase"
	"course-reservation/internal/usecase/commands"
	"course-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) retry.Policy {
		return retry.NewPolicy(cfg.Retry)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewLedgerCommands,
		commands.NewReservationCommands,
		commands.NewCourseCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCourseQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
