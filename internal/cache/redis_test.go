package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewCache(NewRedisClient(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_IncrWithExpire_StartsWindow(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	n, err := c.IncrWithExpire(ctx, "ratelimit", "/login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:/login:10.0.0.1"))

	mr.FastForward(30 * time.Second)
	n, err = c.IncrWithExpire(ctx, "ratelimit", "/login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 30*time.Second, mr.TTL("ratelimit:/login:10.0.0.1"))

	mr.FastForward(31 * time.Second)
	n, err = c.IncrWithExpire(ctx, "ratelimit", "/login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCache_IncrWithExpire_RepairsMissingTTL(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("ratelimit:/login:10.0.0.1", "50"))
	require.Zero(t, mr.TTL("ratelimit:/login:10.0.0.1"))

	n, err := c.IncrWithExpire(context.Background(), "ratelimit", "/login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(51), n)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:/login:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists("ratelimit:/login:10.0.0.1"))
}

func TestCache_IncrWithExpire_ReportsErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	c := NewCache(NewRedisClient(mr.Addr(), "", 0))
	defer c.Close()
	mr.Close()

	_, err = c.IncrWithExpire(context.Background(), "ratelimit", "k", time.Minute)
	assert.Error(t, err)
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "session", "absent")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "session", "id", "v", time.Minute))
	v, err := c.Get(ctx, "session", "id")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, c.Delete(ctx, "session", "id"))
	_, err = c.Get(ctx, "session", "id")
	assert.ErrorIs(t, err, ErrMiss)
}
