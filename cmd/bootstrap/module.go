package bootstrap

import (
	"course-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	PersistenceModule,
	MessagingModule,
	components.UseCaseModule,
	components.HandlerModule,
)
