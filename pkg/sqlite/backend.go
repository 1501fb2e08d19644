// Package sqlite provides the public API for the SQLite cache store.
// This package exposes the factory function for creating stores while
// keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/notionmap/internal/sqlite"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Store is an on-disk cache. It must be attached before use.
type Store interface {
	types.Cache
	Attach(config types.CacheConfig) error
	Detach() error
}

// NewStore creates a new SQLite store.
// The store is not attached; call Attach with a CacheConfig to open it.
//
// Example:
//
//	store := sqlite.NewStore()
//	err := store.Attach(types.CacheConfig{
//	    Backend: types.CacheSQLite,
//	    Dir:     "/var/cache/notionmap",
//	})
//	defer store.Detach()
func NewStore() Store {
	return sqlite.NewStore()
}
