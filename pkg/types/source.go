package types

import (
	"context"
	"errors"
)

// Source resolves identifiers into record maps. Misses (placeholder,
// unrecoverable identifier, not found) yield an empty RecordMap and a nil
// error; only genuine failures are returned as errors.
type Source interface {
	// GetRecordMap resolves one identifier into a fresh RecordMap.
	GetRecordMap(ctx context.Context, id string) (*RecordMap, error)

	// GetBlocks returns the direct children of each listed block. Invalid
	// identifiers are skipped.
	GetBlocks(ctx context.Context, ids []string) (*RecordMap, error)

	// PageIDs lists the pages of the configured root database.
	PageIDs(ctx context.Context) ([]string, error)
}

// Cache stores serialized values under string keys.
type Cache interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key returns ErrCacheMiss.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Close releases the store. Close is idempotent.
	Close() error
}

// Cache errors.
var (
	ErrCacheMiss       = errors.New("cache miss")
	ErrInvalidKey      = errors.New("invalid cache key")
	ErrCacheDetached   = errors.New("cache is detached")
	ErrAlreadyAttached = errors.New("cache is already attached")
)
