package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/notionmap/internal/paths"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "NOTIONMAP"

	cfgKeyRootID           = "root_id"
	cfgKeyUseOfficialAPI   = "use_official_api"
	cfgKeyIntegrationToken = "integration_token"
	cfgKeyTokenV2          = "token_v2"
	cfgKeyActiveUser       = "active_user"
	cfgKeyPageSize         = "page_size"
	cfgKeyViewIndex        = "view_index"
	cfgKeyLogLevel         = "log_level"
	cfgKeyCacheBackend     = "cache.backend"
	cfgKeyCacheDir         = "cache.dir"
	cfgKeyCacheRedisAddr   = "cache.redis_addr"
	cfgKeyCacheRedisPass   = "cache.redis_password"
	cfgKeyCacheRedisDB     = "cache.redis_db"
	cfgKeyCacheTTL         = "cache.ttl"

	defaultLogLevel = "info"
)

// legacyEnv maps config keys to the environment names deployments of the
// original site already use.
var legacyEnv = map[string]string{
	cfgKeyRootID:           "NOTION_PAGE_ID",
	cfgKeyIntegrationToken: "NOTION_INTEGRATION_TOKEN",
	cfgKeyTokenV2:          "NOTION_TOKEN_V2",
	cfgKeyActiveUser:       "NOTION_ACTIVE_USER",
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# notionmap configuration
# Environment variables override these values: NOTIONMAP_<KEY>, with
# NOTION_PAGE_ID and NOTION_INTEGRATION_TOKEN also accepted.

# Root database id
# root_id:

# Use the official API when an integration token is set
use_official_api: false

# Credentials (prefer the environment)
# integration_token:
# token_v2:
# active_user:

page_size: 100
view_index: 0
log_level: info

cache:
  backend: sqlite
  # dir:
  # redis_addr: localhost:6379
  # ttl: 1h
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyRootID, "")
	v.SetDefault(cfgKeyUseOfficialAPI, false)
	v.SetDefault(cfgKeyIntegrationToken, "")
	v.SetDefault(cfgKeyTokenV2, "")
	v.SetDefault(cfgKeyActiveUser, "")
	v.SetDefault(cfgKeyPageSize, types.DefaultPageSize)
	v.SetDefault(cfgKeyViewIndex, 0)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyCacheBackend, types.CacheSQLite)
	v.SetDefault(cfgKeyCacheDir, "")
	v.SetDefault(cfgKeyCacheRedisAddr, "")
	v.SetDefault(cfgKeyCacheRedisPass, "")
	v.SetDefault(cfgKeyCacheRedisDB, 0)
	v.SetDefault(cfgKeyCacheTTL, "0s")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(key)
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", legacy, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// configFromViper decodes and validates the effective configuration.
func configFromViper(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, paths.ConfigFile)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
