package cache_fx

import (
	"go.uber.org/fx"

	"tripforge/internal/config"
	"tripforge/internal/infra"
	"tripforge/pkg/cache"
)

var Module = fx.Provide(provideCache)

func provideCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.CacheBackend == "redis" {
		client, err := infra.InitRedis(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisCache(client), nil
	}
	return cache.NewMemoryCache(), nil
}
