// Package notionmap is the public entry point: it builds the source resolver
// and opens the configured cache store.
package notionmap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/notionmap/internal/cache"
	"github.com/mesh-intelligence/notionmap/internal/resolver"
	"github.com/mesh-intelligence/notionmap/pkg/sqlite"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Version is the notionmap release.
const Version = "0.3.0"

// NewSource returns a Source for cfg. Clients are built lazily on the first
// call. A nil logger uses the default logger.
func NewSource(cfg types.Config, logger *slog.Logger) types.Source {
	opts := resolver.Options{}
	if logger != nil {
		opts.Logger = logger.With("component", "resolver")
	}
	return resolver.New(cfg, opts)
}

// NewCachedSource returns src reading through c.
func NewCachedSource(src types.Source, c types.Cache, logger *slog.Logger) types.Source {
	if logger != nil {
		logger = logger.With("component", "cache")
	}
	return cache.NewSource(src, c, logger)
}

// OpenCache opens the cache store selected by cfg.Backend. An empty backend
// selects sqlite.
func OpenCache(ctx context.Context, cfg types.CacheConfig) (types.Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case types.CacheSQLite, "":
		store := sqlite.NewStore()
		if err := store.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach sqlite cache: %w", err)
		}
		return store, nil
	case types.CacheMemory:
		return cache.NewMemoryStore(cfg.TTL), nil
	case types.CacheRedis:
		return cache.NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrCacheBackendUnknown, cfg.Backend)
	}
}

// ClearConfig deletes the cached site data and root record map of rootID and
// returns the keys that were present.
func ClearConfig(ctx context.Context, c types.Cache, rootID string) ([]string, error) {
	return cache.ClearConfig(ctx, c, rootID)
}
