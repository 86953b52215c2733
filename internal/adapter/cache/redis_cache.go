package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

// RedisCache keeps a best-effort copy of order status for cheap reads.
// It is refreshed after transitions and never authoritative.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (r *RedisCache) SetStatus(ctx context.Context, orderID string, status string) error {
	return r.rdb.Set(ctx, "order:status:"+orderID, status, r.ttl).Err()
}

func (r *RedisCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	val, err := r.rdb.Get(ctx, "order:status:"+orderID).Result()
	if err == redis.Nil {
		return "", domain.ErrNotFound
	}
	return val, err
}

var _ usecase.OrderCache = (*RedisCache)(nil)
