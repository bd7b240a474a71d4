package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"course-reservation/internal/infra/messaging"
	"course-reservation/internal/pkg/config"
	"course-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, ledger events are not published")
		return messaging.NoopPublisher{}
	}

	writer := messaging.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	publisher := messaging.NewPublisher(logger.With("component", "ledger-events"), writer, cfg.Kafka.BufferSize)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			publisher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// drain before closing the writer so queued events still go out
			stopErr := publisher.Stop(ctx)
			return errors.Join(stopErr, writer.Close())
		},
	})
	return publisher
}
