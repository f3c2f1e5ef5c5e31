package bootstrap

import (
	"context"
	"time"

	"storefront/internal/infra/webhookguard"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Replay markers must outlive the provider's webhook retry schedule.
const webhookReplayTTL = 24 * time.Hour

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewWebhookGuard,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errs.Wrap(err, "failed to connect to redis")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return rdb, nil
}

func NewWebhookGuard(rdb *redis.Client) *webhookguard.Guard {
	return webhookguard.NewGuard(rdb, webhookReplayTTL)
}
