package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"agribot/internal/cache"
)

const namespace = "session"

// RedisStore keeps session records as JSON values with a TTL.
type RedisStore struct {
	cache *cache.Cache
}

func NewRedisStore(c *cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func (r *RedisStore) Save(ctx context.Context, s *Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.cache.Set(ctx, namespace, s.ID, data, ttl)
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := r.cache.Get(ctx, namespace, id)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, namespace, id)
}
