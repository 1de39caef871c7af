package config

import (
	"context"
	"fmt"

	"taskboard/pkg/cache"
	"taskboard/pkg/preference"

	"github.com/rs/zerolog/log"
)

// Backends bundles the optional Redis connection and the preference store.
type Backends struct {
	Cache       *cache.Cache
	Preferences preference.Store
}

// OpenBackends connects to Redis when REDIS_ADDR is set and opens the
// configured preference store on top of it.
func OpenBackends(ctx context.Context, cfg Config) (*Backends, error) {
	backends := &Backends{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewCache(ctx, cache.ConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		backends.Cache = redisCache
	}

	prefCfg := preference.ConfigFromEnv()
	store, err := preference.Open(ctx, prefCfg, backends.Cache)
	if err != nil {
		backends.Close()
		return nil, err
	}
	log.Debug().Str("backend", prefCfg.Backend).Msg("Preference store opened")
	backends.Preferences = store
	return backends, nil
}

func (b *Backends) Close() {
	if b.Cache != nil {
		b.Cache.Shutdown()
	}
}
