package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/notionmap/internal/cache"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Store implements types.Cache on a SQLite database file.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.CacheConfig
	db       *sql.DB
	now      func() time.Time
}

// NewStore creates a new SQLite store. The store is not attached; call
// Attach with a CacheConfig to open the database.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Attach opens (creating if needed) the cache database in config.Dir,
// applies the schema, and drops expired entries.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.CacheConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	dir := config.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DatabaseFile))
	if err != nil {
		return fmt.Errorf("open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if _, err := db.Exec(purgeExpired, s.now().UnixMilli()); err != nil {
		db.Close()
		return fmt.Errorf("purge expired entries: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrCacheDetached. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	return nil
}

// Close detaches the store.
func (s *Store) Close() error {
	return s.Detach()
}

// Get returns the value stored under key. Expired entries are misses.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := cache.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrCacheDetached
	}

	var (
		value     []byte
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, selectEntry, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if expiresAt > 0 && expiresAt <= s.now().UnixMilli() {
		return nil, types.ErrCacheMiss
	}
	return value, nil
}

// Set stores value under key, applying the configured TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := cache.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrCacheDetached
	}

	now := s.now()
	var expiresAt int64
	if s.config.TTL > 0 {
		expiresAt = now.Add(s.config.TTL).UnixMilli()
	}
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, upsertEntry, key, value, now.UTC().Format(time.RFC3339), expiresAt); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key returns ErrCacheMiss.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := cache.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrCacheDetached
	}

	res, err := s.db.ExecContext(ctx, deleteEntry, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if n == 0 {
		return types.ErrCacheMiss
	}
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrCacheDetached
	}
	if _, err := s.db.ExecContext(ctx, deleteAll); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
