package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Source reads record maps through a cache. Empty record maps are not
// cached. Cache failures are logged and the underlying source is used.
type Source struct {
	types.Source
	cache  types.Cache
	logger *slog.Logger
}

// NewSource wraps src with c.
func NewSource(src types.Source, c types.Cache, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default().With("component", "cache")
	}
	return &Source{Source: src, cache: c, logger: logger}
}

// GetRecordMap returns the cached record map for id, resolving and caching
// it on a miss.
func (s *Source) GetRecordMap(ctx context.Context, id string) (*types.RecordMap, error) {
	key := keyID(id)

	m, err := LoadRecordMap(ctx, s.cache, key)
	if err == nil {
		s.logger.DebugContext(ctx, "cache hit", "key", PageContentKey(key))
		return m, nil
	}
	if !errors.Is(err, types.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "cache read failed", "key", PageContentKey(key), "error", err)
	}

	m, err = s.Source.GetRecordMap(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.IsEmpty() {
		if err := SaveRecordMap(ctx, s.cache, key, m); err != nil {
			s.logger.WarnContext(ctx, "cache write failed", "key", PageContentKey(key), "error", err)
		}
	}
	return m, nil
}
