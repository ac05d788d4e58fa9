package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *RedisStorage {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	s, err := NewRedisStorage(context.Background(), &config.RedisConfig{Addr: addr}, "test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Reset()
		_ = s.Close()
	})
	return s
}

func TestRedisStorage(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("limiter:1.2.3.4", []byte("3"), time.Minute))
	got, err = s.Get("limiter:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)

	require.NoError(t, s.Delete("limiter:1.2.3.4"))
	got, err = s.Get("limiter:1.2.3.4")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))
	require.NoError(t, s.Reset())
	got, _ = s.Get("a")
	assert.Nil(t, got)
}

func TestNewRedisStorage_Unreachable(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), &config.RedisConfig{Addr: "127.0.0.1:1"}, "x:")
	assert.Error(t, err)
}
