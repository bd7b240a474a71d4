package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"course-reservation/internal/infra/db"
	"course-reservation/internal/infra/memory"
	"course-reservation/internal/infra/postgres"
	"course-reservation/internal/infra/redisstore"
	"course-reservation/internal/infra/sqlite"
	"course-reservation/internal/infra/uow"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/config"
	"course-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewLedgerBackend,
		NewIdempotencyStore,
	),
)

// LedgerBackend exposes one store under both ledger ports.
type LedgerBackend struct {
	fx.Out

	Ledger        shared.LedgerStore
	Prerequisites shared.PrerequisiteStore
}

func NewLedgerBackend(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (LedgerBackend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	logger = logger.With("component", "ledger", "backend", cfg.Ledger.Backend)

	switch cfg.Ledger.Backend {
	case config.LedgerBackendMemory:
		logger.Warn("using in-memory ledger, state is lost on restart")
		store := memory.NewLedgerStore(logger)
		return LedgerBackend{Ledger: store, Prerequisites: store}, nil

	case config.LedgerBackendSQLite:
		sdb, err := sqlite.Open(ctx, cfg.Ledger.SQLitePath)
		if err != nil {
			return LedgerBackend{}, err
		}
		lc.Append(fx.StopHook(sdb.Close))
		store := sqlite.NewLedgerStore(sdb, logger)
		return LedgerBackend{Ledger: store, Prerequisites: store}, nil

	case config.LedgerBackendPostgres:
		pool, cleanup, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return LedgerBackend{}, err
		}
		lc.Append(fx.StopHook(cleanup))
		store := postgres.NewLedgerStore(uow.NewPostgresUoW(pool, logger), logger)
		return LedgerBackend{Ledger: store, Prerequisites: store}, nil

	default:
		return LedgerBackend{}, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}

func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (shared.IdempotencyStore, error) {
	if cfg.Redis.Addr == "" {
		return memory.NewIdempotencyStore(clk), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	rdb, err := redisstore.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(rdb.Close))
	return redisstore.NewIdempotencyStore(rdb), nil
}
