package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss значение отсутствует в кэше
	ErrCacheMiss = errors.New("settings.cache: miss")

	// ErrCache ошибка обращения к redis
	ErrCache = errors.New("settings.cache: redis error")
)

const keyPrefix = "settings:"

// Cache кэш сырых настроек ресторана в redis
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCache создает кэш с заданным TTL
func NewCache(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(tenantID uuid.UUID) string {
	return keyPrefix + tenantID.String()
}

// Get возвращает закэшированные значения или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, tenantID uuid.UUID) (map[string]string, error) {
	raw, err := c.client.Get(ctx, key(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCache, err)
	}

	return values, nil
}

// Set сохраняет значения с TTL
func (c *Cache) Set(ctx context.Context, tenantID uuid.UUID, values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key(tenantID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}

	return nil
}

// Invalidate удаляет значения ресторана из кэша
func (c *Cache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, key(tenantID)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCache, err)
	}
	return nil
}
