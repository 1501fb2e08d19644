package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

func TestNewRedisStoreRequiresAddr(t *testing.T) {
	_, err := NewRedisStore(context.Background(), types.CacheConfig{Backend: types.CacheRedis})
	assert.ErrorIs(t, err, types.ErrRedisAddrEmpty)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, types.CacheConfig{Backend: types.CacheRedis, RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
