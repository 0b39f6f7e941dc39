package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/condo-service/internal/domain"
)

const condominioKeyPrefix = "condominio:"

// CondominioCache is a best-effort read-through cache. Failures are logged
// and reported as misses; they never fail the caller.
type CondominioCache interface {
	Get(ctx context.Context, id int64) (*domain.Condominio, bool)
	Set(ctx context.Context, condo *domain.Condominio)
	Delete(ctx context.Context, id int64)
}

type redisCondominioCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCondominioCache stores condominios as JSON under condominio:<id>.
func NewRedisCondominioCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) CondominioCache {
	if client == nil {
		return Noop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisCondominioCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisCondominioCache) Get(ctx context.Context, id int64) (*domain.Condominio, bool) {
	raw, err := c.client.Get(ctx, condominioKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("condominio cache get failed", zap.Int64("condominio_id", id), zap.Error(err))
		}
		return nil, false
	}

	var condo domain.Condominio
	if err := json.Unmarshal(raw, &condo); err != nil {
		c.logger.Warn("condominio cache entry corrupt", zap.Int64("condominio_id", id), zap.Error(err))
		c.Delete(ctx, id)
		return nil, false
	}
	return &condo, true
}

func (c *redisCondominioCache) Set(ctx context.Context, condo *domain.Condominio) {
	raw, err := json.Marshal(condo)
	if err != nil {
		c.logger.Warn("condominio cache encode failed", zap.Int64("condominio_id", condo.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, condominioKey(condo.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("condominio cache set failed", zap.Int64("condominio_id", condo.ID), zap.Error(err))
	}
}

func (c *redisCondominioCache) Delete(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, condominioKey(id)).Err(); err != nil {
		c.logger.Warn("condominio cache delete failed", zap.Int64("condominio_id", id), zap.Error(err))
	}
}

func condominioKey(id int64) string {
	return condominioKeyPrefix + strconv.FormatInt(id, 10)
}

type noopCache struct{}

// Noop returns a cache that never stores anything.
func Noop() CondominioCache { return noopCache{} }

func (noopCache) Get(context.Context, int64) (*domain.Condominio, bool) { return nil, false }
func (noopCache) Set(context.Context, *domain.Condominio)              {}
func (noopCache) Delete(context.Context, int64)                        {}
