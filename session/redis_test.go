package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisStore_GetSet(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "cart", `{"items":[]}`, time.Hour))

	v, ok, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"items":[]}`, v)

	assert.True(t, mr.Exists(DefaultRedisPrefix+"cart"))
	assert.Equal(t, time.Hour, mr.TTL(DefaultRedisPrefix+"cart"))
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "orders", "[]", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_ScopedSessions(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, Scope(store, "abc").Set(ctx, "cart", "x", 0))
	assert.True(t, mr.Exists(DefaultRedisPrefix+"session:abc:cart"))
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client)
	mr.Close()

	_, _, err := store.Get(context.Background(), "cart")
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}
