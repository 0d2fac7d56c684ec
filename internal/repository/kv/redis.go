package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rocketshoes/internal/domain"
)

type redisRepo struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedis returns a store backed by Redis. Values are kept without expiry.
func NewRedis(client *redis.Client, prefix string, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisRepo{client: client, prefix: prefix, logger: logger}
}

func (r *redisRepo) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return v, nil
}

func (r *redisRepo) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	r.logger.Debug("kv redis: set", zap.String("key", r.redisKey(key)))
	return nil
}

func (r *redisRepo) redisKey(key string) string {
	return r.prefix + key
}
