package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/infrastructure/session"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis no disponible en %s: %v", addr, err)
	}
	return client
}

func TestRedisStorage_CicloDeVida(t *testing.T) {
	client := setupTestRedis(t)
	store := session.NewRedisStorage(client, "test:sess:")
	t.Cleanup(func() { _ = store.Reset(); _ = store.Close() })

	got, err := store.Get("no-existe")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set("abc", []byte(`{"current_company_id":10}`), time.Minute))
	got, err = store.Get("abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"current_company_id":10}`, string(got))

	ttl, err := client.TTL(context.Background(), "test:sess:abc").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete("abc"))
	got, err = store.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStorage_ResetSoloPrefijo(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "otro:clave", "x", time.Minute).Err())
	t.Cleanup(func() { client.Del(ctx, "otro:clave"); _ = client.Close() })

	store := session.NewRedisStorage(client, "reset:sess:")
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Set(k, []byte("v"), time.Minute))
	}
	require.NoError(t, store.Reset())

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "x", client.Get(ctx, "otro:clave").Val())
}
