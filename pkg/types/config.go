package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/notionmap/internal/ident"
)

// PlaceholderID is the reserved identifier of the known placeholder error
// page. Resolving it never contacts a source.
const PlaceholderID = "oops-page-001"

// DefaultPageSize is the page size requested from the official API. It is
// also the largest page size that API accepts.
const DefaultPageSize = 100

// Supported cache backends.
const (
	CacheSQLite = "sqlite"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds source selection, credentials, and cache parameters.
type Config struct {
	RootID           string      `json:"root_id" yaml:"root_id" mapstructure:"root_id"`
	UseOfficialAPI   bool        `json:"use_official_api" yaml:"use_official_api" mapstructure:"use_official_api"`
	IntegrationToken string      `json:"-" yaml:"integration_token,omitempty" mapstructure:"integration_token"`
	TokenV2          string      `json:"-" yaml:"token_v2,omitempty" mapstructure:"token_v2"`
	ActiveUser       string      `json:"active_user,omitempty" yaml:"active_user,omitempty" mapstructure:"active_user"`
	PageSize         int         `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
	ViewIndex        int         `json:"view_index" yaml:"view_index" mapstructure:"view_index"`
	Cache            CacheConfig `json:"cache" yaml:"cache" mapstructure:"cache"`
}

// CacheConfig selects and parameterizes the cache store. A zero TTL means
// entries never expire.
type CacheConfig struct {
	Backend       string        `json:"backend" yaml:"backend" mapstructure:"backend"`
	Dir           string        `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`
	RedisAddr     string        `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`
	RedisPassword string        `json:"-" yaml:"redis_password,omitempty" mapstructure:"redis_password"`
	RedisDB       int           `json:"redis_db,omitempty" yaml:"redis_db,omitempty" mapstructure:"redis_db"`
	TTL           time.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty" mapstructure:"ttl"`
}

// Config validation errors.
var (
	ErrRootIDInvalid       = errors.New("root id is not a valid identifier")
	ErrPageSizeInvalid     = errors.New("page size must be between 1 and 100")
	ErrViewIndexInvalid    = errors.New("view index must not be negative")
	ErrCacheBackendUnknown = errors.New("unknown cache backend")
	ErrRedisAddrEmpty      = errors.New("redis address must not be empty")
)

// knownCacheBackends lists the cache backends that Validate accepts.
var knownCacheBackends = map[string]bool{
	CacheSQLite: true,
	CacheMemory: true,
	CacheRedis:  true,
}

// EffectivePageSize returns PageSize, or DefaultPageSize when unset.
func (c Config) EffectivePageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// Validate checks that the Config is well-formed. An empty root id is valid;
// an empty page size means DefaultPageSize.
func (c Config) Validate() error {
	if c.RootID != "" {
		if _, ok := ident.Canonicalize(c.RootID); !ok {
			return fmt.Errorf("%w: %q", ErrRootIDInvalid, c.RootID)
		}
	}
	if c.PageSize < 0 || c.PageSize > DefaultPageSize {
		return ErrPageSizeInvalid
	}
	if c.ViewIndex < 0 {
		return ErrViewIndexInvalid
	}
	return c.Cache.Validate()
}

// Validate checks the cache backend name and its required parameters. An
// empty backend means CacheSQLite.
func (c CacheConfig) Validate() error {
	if c.Backend == "" {
		return nil
	}
	if !knownCacheBackends[c.Backend] {
		return fmt.Errorf("%w: %q", ErrCacheBackendUnknown, c.Backend)
	}
	if c.Backend == CacheRedis && c.RedisAddr == "" {
		return ErrRedisAddrEmpty
	}
	return nil
}
