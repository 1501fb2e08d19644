package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/mesh-intelligence/notionmap/internal/sqlite"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// writeJSON prints v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func backendName(a *app) string {
	if a.cfg.Cache.Backend == "" {
		return types.CacheSQLite
	}
	return a.cfg.Cache.Backend
}

// cacheLocation describes where the configured backend keeps its entries.
func cacheLocation(a *app) string {
	switch backendName(a) {
	case types.CacheMemory:
		return "in process"
	case types.CacheRedis:
		return a.cfg.Cache.RedisAddr
	default:
		return filepath.Join(a.cfg.Cache.Dir, sqlite.DatabaseFile)
	}
}
