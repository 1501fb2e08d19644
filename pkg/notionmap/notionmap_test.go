package notionmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

func TestOpenCache(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     types.CacheConfig
		wantErr error
	}{
		{name: "default is sqlite", cfg: types.CacheConfig{Dir: t.TempDir()}},
		{name: "sqlite", cfg: types.CacheConfig{Backend: types.CacheSQLite, Dir: t.TempDir()}},
		{name: "memory", cfg: types.CacheConfig{Backend: types.CacheMemory}},
		{name: "unknown", cfg: types.CacheConfig{Backend: "memcached"}, wantErr: types.ErrCacheBackendUnknown},
		{name: "redis without addr", cfg: types.CacheConfig{Backend: types.CacheRedis}, wantErr: types.ErrRedisAddrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := OpenCache(ctx, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer c.Close()

			require.NoError(t, c.Set(ctx, "k", []byte("v")))
			got, err := c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), got)
		})
	}
}

func TestNewSourceResolvesPlaceholderOffline(t *testing.T) {
	src := NewSource(types.Config{UseOfficialAPI: true}, nil)
	m, err := src.GetRecordMap(context.Background(), types.PlaceholderID)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestClearConfig(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCache(ctx, types.CacheConfig{Backend: types.CacheMemory})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "page_content_root", []byte("{}")))
	cleared, err := ClearConfig(ctx, c, "root")
	require.NoError(t, err)
	assert.Equal(t, []string{"page_content_root"}, cleared)
}
