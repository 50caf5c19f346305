package memcache_fx

import (
	"context"

	"github.com/charmbracelet/log"
	"go.uber.org/fx"

	"menteviva/internal/config"
	"menteviva/internal/infra"
	mem "menteviva/pkg/memcache"
	"menteviva/pkg/middleware"
)

var Module = fx.Provide(
	provideCounterStore,
	middleware.NewRateLimiter)

// provideCounterStore shares rate-limit counters through redis when it is
// configured and keeps them in process otherwise.
func provideCounterStore(lc fx.Lifecycle, cfg *config.Config, logger *log.Logger) (mem.CounterStore, error) {
	client, err := infra.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logger.Info("redis not configured, using in-memory rate limiting")
		return mem.NewWindowCounter(), nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return middleware.NewRedisCounter(client), nil
}
