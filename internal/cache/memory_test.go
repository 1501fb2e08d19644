package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, types.ErrCacheMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	got[0] = 'X'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, s.Delete(ctx, "k"))
	assert.ErrorIs(t, s.Delete(ctx, "k"), types.ErrCacheMiss)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	now = now.Add(59 * time.Second)
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, types.ErrCacheMiss)
	assert.ErrorIs(t, s.Delete(ctx, "k"), types.ErrCacheMiss)
}

func TestMemoryStoreClearAndClose(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "b", []byte("2")))

	require.NoError(t, s.Clear(ctx))
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, types.ErrCacheMiss)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Set(ctx, "a", nil), types.ErrCacheDetached)
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, types.ErrCacheDetached)
}

func TestMemoryStoreRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	for _, key := range []string{"", "has space", "tab\tkey", "nl\n"} {
		assert.ErrorIs(t, s.Set(ctx, key, nil), types.ErrInvalidKey, key)
	}
}
