package redis

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/pkg/clients"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	r "github.com/redis/go-redis/v9"
)

const (
	catalogPrefix = "catalog:"
	scanBatch     = 100
)

// CacheRepo — кэш ответов бэкенда для витрины (категории, фильтры, меню).
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Get декодирует значение в dst. false без ошибки — промах кэша.
func (c *CacheRepo) Get(ctx context.Context, key string, dst any) (bool, error) {
	k := catalogKey(key)

	val, err := c.client.Client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return false, nil
		}
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := redisValueToBytes(val, k)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warnf("Redis unmarshal failed for %s: %v", k, err)
		if delErr := c.client.Client.Del(ctx, k).Err(); delErr != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), delErr))
		}
		return false, nil
	}

	return true, nil
}

// Set кэширует значение на CatalogTTL.
func (c *CacheRepo) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, catalogKey(key), data, c.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Clear удаляет все ключи каталога. Ключи сначала собираются полным проходом SCAN
// и удаляются пачками после него: удаление между страницами сдвигает курсор.
func (c *CacheRepo) Clear(ctx context.Context) error {
	var keys []string

	iter := c.client.Client.Scan(ctx, 0, catalogPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	c.logger.Debugf("catalog cache: %d keys removed", len(keys))
	return nil
}

func catalogKey(key string) string {
	return catalogPrefix + key
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val interface{}, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
