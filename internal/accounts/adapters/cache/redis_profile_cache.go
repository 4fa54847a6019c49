// Package cache содержит кэш публичных профилей на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/ports/cache"
	"goaccounts/pkg/logger"
)

// KeyPrefix - префикс ключей профилей.
const KeyPrefix = "profile:"

const (
	LogMethodGet = "get"
	LogMethodSet = "set"

	ErrorFailedToGet    = "failed to get profile from redis"
	ErrorFailedToSet    = "failed to set profile in redis"
	ErrorFailedToDecode = "failed to decode cached profile"
)

// RedisProfileCache реализует cache.ProfileCache.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache создает кэш с временем жизни ttl. Нулевой ttl означает хранение без срока.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) cache.ProfileCache {
	return &RedisProfileCache{client: client, ttl: ttl}
}

// Key возвращает ключ профиля.
func Key(id string) string {
	return KeyPrefix + id
}

// Get возвращает профиль или nil, nil при промахе.
func (c *RedisProfileCache) Get(ctx context.Context, id string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", Key(id)))

	raw, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var profile entities.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	return &profile, nil
}

// Set сохраняет профиль.
func (c *RedisProfileCache) Set(ctx context.Context, profile *entities.Profile) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", Key(profile.ID)))

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	if err := c.client.Set(ctx, Key(profile.ID), raw, c.ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}
