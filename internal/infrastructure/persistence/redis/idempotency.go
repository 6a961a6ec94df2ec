package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

const idempotencyPrefix = "idempotency:movement:"

// IdempotencyStore 库存变动幂等键
// 客户端重试同一个Idempotency-Key时,第二次请求不会再写一条流水
// Key设计：idempotency:movement:{key},过期后自动删除
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore 创建幂等键存储
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Acquire 占用幂等键(SETNX),返回false表示已被占用
func (s *IdempotencyStore) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyPrefix+key, time.Now().Unix(), s.ttl).Result()
	if err != nil {
		return false, &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "占用幂等键失败", Err: err}
	}
	return ok, nil
}

// Release 释放幂等键,变动失败后允许客户端用同一个键重试
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "释放幂等键失败", Err: err}
	}
	return nil
}
