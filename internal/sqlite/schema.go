// Package sqlite implements the on-disk record-map cache on SQLite.
package sqlite

// DatabaseFile is the cache database's file name inside the cache directory.
const DatabaseFile = "cache.db"

// Schema DDL. Statements are idempotent so the cache survives restarts.
const (
	createCacheEntries = `CREATE TABLE IF NOT EXISTS cache_entries (
    cache_key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    created_at TEXT NOT NULL,
    expires_at INTEGER NOT NULL DEFAULT 0
);`

	idxCacheEntriesExpires = `CREATE INDEX IF NOT EXISTS idx_cache_entries_expires ON cache_entries(expires_at);`
)

// Queries.
const (
	selectEntry = `SELECT value, expires_at FROM cache_entries WHERE cache_key = ?`
	upsertEntry = `INSERT INTO cache_entries (cache_key, value, created_at, expires_at) VALUES (?, ?, ?, ?)
ON CONFLICT(cache_key) DO UPDATE SET value = excluded.value, created_at = excluded.created_at, expires_at = excluded.expires_at`
	deleteEntry  = `DELETE FROM cache_entries WHERE cache_key = ?`
	deleteAll    = `DELETE FROM cache_entries`
	purgeExpired = `DELETE FROM cache_entries WHERE expires_at > 0 AND expires_at <= ?`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createCacheEntries,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxCacheEntriesExpires,
}
