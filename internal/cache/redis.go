// Package cache wraps the Redis client with namespaced keys.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache: key not found")

type Cache struct {
	client redis.UniversalClient
}

// NewRedisClient opens a client for a single Redis node.
func NewRedisClient(addr, password string, db int) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewCache(client redis.UniversalClient) *Cache {
	return &Cache{client: client}
}

func key(namespace, k string) string {
	return namespace + ":" + k
}

func (c *Cache) Set(ctx context.Context, namespace, k string, value interface{}, ttl time.Duration) error {
	return c.client.Set(ctx, key(namespace, k), value, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, namespace, k string) (string, error) {
	v, err := c.client.Get(ctx, key(namespace, k)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (c *Cache) Delete(ctx context.Context, namespace, k string) error {
	return c.client.Del(ctx, key(namespace, k)).Err()
}

// IncrWithExpire increments a counter and starts its TTL window on the first
// hit. INCR and EXPIRE NX run in one transaction, so a counter left without a
// TTL gets one on its next hit. Requires Redis 7.
func (c *Cache) IncrWithExpire(ctx context.Context, namespace, k string, window time.Duration) (int64, error) {
	countKey := key(namespace, k)

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, countKey)
		pipe.ExpireNX(ctx, countKey, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", countKey, err)
	}
	return incr.Val(), nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
