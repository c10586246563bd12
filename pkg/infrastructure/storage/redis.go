package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const defaultRedisTimeout = 5 * time.Second

// RedisStorage stores entries as plain string keys prefixed with a namespace.
type RedisStorage struct {
	client    *redis.Client
	namespace string
	timeout   time.Duration
}

func NewRedisStorage(redisURL, namespace string, timeout time.Duration) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Redis URL")
	}
	if namespace == "" {
		namespace = "pos"
	}
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	s := &RedisStorage{
		client:    redis.NewClient(opts),
		namespace: namespace,
		timeout:   timeout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		_ = s.client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}
	return s, nil
}

func (r *RedisStorage) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	value, err := r.client.Get(ctx, r.buildKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get key %s", key)
	}
	return value, true, nil
}

func (r *RedisStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	err := r.client.Set(ctx, r.buildKey(key), value, 0).Err()
	return errors.Wrapf(err, "failed to set key %s", key)
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

func (r *RedisStorage) buildKey(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, key)
}
