package preference

import (
	"context"
	"errors"

	"taskboard/pkg/cache"
)

// RedisStore shares preferences between every process using the same Redis.
type RedisStore struct {
	cache *cache.Cache
}

func NewRedisStore(c *cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.cache.Get(ctx, cache.PreferenceKey(key))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores without expiry; preferences live until deleted.
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	return s.cache.SetWithExpire(ctx, cache.PreferenceKey(key), value, 0)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, cache.PreferenceKey(key))
}
