package preference

import (
	"context"
	"errors"
	"fmt"

	"taskboard/pkg/cache"
	"taskboard/utils"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendAWS   = "aws"
)

type Config struct {
	Backend     string
	File        string
	AWSSecretID string
	AWSRegion   string
}

// ConfigFromEnv reads PREFERENCES_BACKEND, PREFERENCES_FILE, AWS_SECRET_ID
// and AWS_REGION.
func ConfigFromEnv() Config {
	return Config{
		Backend:     utils.GetEnvDefault("PREFERENCES_BACKEND", BackendFile),
		File:        utils.GetEnvDefault("PREFERENCES_FILE", ""),
		AWSSecretID: utils.GetEnvDefault("AWS_SECRET_ID", ""),
		AWSRegion:   utils.GetEnvDefault("AWS_REGION", ""),
	}
}

// Open builds the configured store. redisCache is only needed by the redis
// backend and may be nil otherwise.
func Open(ctx context.Context, cfg Config, redisCache *cache.Cache) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		path := cfg.File
		if path == "" {
			var err error
			if path, err = DefaultFilePath(); err != nil {
				return nil, fmt.Errorf("failed to locate preferences file: %w", err)
			}
		}
		return NewFileStore(path), nil
	case BackendRedis:
		if redisCache == nil {
			return nil, errors.New("redis preference backend needs REDIS_ADDR")
		}
		return NewRedisStore(redisCache), nil
	case BackendAWS:
		if cfg.AWSSecretID == "" || cfg.AWSRegion == "" {
			return nil, errors.New("aws preference backend needs AWS_SECRET_ID and AWS_REGION")
		}
		store, err := NewSecretStore(ctx, cfg.AWSSecretID, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown preference backend %q", cfg.Backend)
	}
}
