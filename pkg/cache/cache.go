package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"taskboard/utils"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix = "taskboard:"

	// LimiterPrefix namespaces the mutation rate limiter counters.
	LimiterPrefix = keyPrefix + "limiter:mutations"
)

var ErrKeyNotFound = errors.New("key not found in Redis")

// PreferenceKey namespaces a user preference name.
func PreferenceKey(name string) string {
	return keyPrefix + "preference:" + name
}

type RedisConfig struct {
	Address  string
	Username string
	Password string
	Db       int
	TLS      bool
}

// ConfigFromEnv reads REDIS_ADDR, REDIS_USERNAME, REDIS_PASSWORD and
// REDIS_DB. TLS is switched on for the aws runtime.
func ConfigFromEnv() RedisConfig {
	return RedisConfig{
		Address:  utils.GetEnvDefault("REDIS_ADDR", ""),
		Username: utils.GetEnvDefault("REDIS_USERNAME", ""),
		Password: utils.GetEnvDefault("REDIS_PASSWORD", ""),
		Db:       utils.GetEnvInt("REDIS_DB", 0),
		TLS:      utils.GetEnvDefault("RUNTIME_ENV", "") == "aws",
	}
}

type Cache struct {
	Redis *redis.Client
}

// NewCache connects and pings Redis before handing the client out.
func NewCache(ctx context.Context, cfg RedisConfig) (*Cache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is empty")
	}
	clientOpts := &redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Db,
	}
	if cfg.TLS {
		clientOpts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(clientOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", cfg.Address, err)
	}

	log.Info().Str("addr", cfg.Address).Msg("Successfully connected to Redis and ping succeeded")
	return &Cache{Redis: redisClient}, nil
}

func (c *Cache) SetWithExpire(ctx context.Context, key string, value string, expiration time.Duration) error {
	err := c.Redis.Set(ctx, key, value, expiration).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to write to Redis")
		return err
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	} else if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to get from Redis")
		return "", err
	}
	return val, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.Redis.Del(ctx, key).Err()
}

func (c *Cache) Shutdown() {
	if err := c.Redis.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Redis connection")
		return
	}
	log.Info().Msg("Successfully closed Redis connection")
}
