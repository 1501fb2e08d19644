// Package cli implements the notionmap command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/notionmap/internal/paths"
	"github.com/mesh-intelligence/notionmap/pkg/notionmap"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	cacheDir  string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one command invocation. PersistentPreRunE fills
// it before any subcommand runs.
type app struct {
	flags     rootFlags
	configDir string
	v         *viper.Viper
	cfg       types.Config
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "notionmap" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "notionmap",
		Short: "Resolve Notion pages and databases into record maps",
		Long: "notionmap fetches content from the official Notion API or the legacy\n" +
			"block-graph API and prints it as one unified record map.",
		Version: notionmap.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.cacheDir, "cache-dir", "", "cache directory (default: platform cache dir)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newBlocksCmd(a))
	root.AddCommand(newPagesCmd(a))
	root.AddCommand(newCacheCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "notionmap:", err)
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// load resolves directories, reads config.yaml and the environment, and
// installs the logger.
func (a *app) load(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if a.flags.logLevel != "" {
		v.Set(cfgKeyLogLevel, a.flags.logLevel)
	}

	cfg, err := configFromViper(v)
	if err != nil {
		return err
	}
	cacheDir, err := paths.ResolveCacheDir(a.flags.cacheDir, cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("resolve cache dir: %w", err)
	}
	cfg.Cache.Dir = cacheDir

	logger, err := newLogger(cmd.ErrOrStderr(), v.GetString(cfgKeyLogLevel))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.configDir = configDir
	a.v = v
	a.cfg = cfg
	a.logger = logger
	return nil
}

// newLogger returns a text logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if level != "" {
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// source builds the resolver, reading through the cache unless useCache is
// false. The returned func releases the cache.
func (a *app) source(ctx context.Context, useCache bool) (types.Source, func() error, error) {
	src := notionmap.NewSource(a.cfg, a.logger)
	if !useCache {
		return src, func() error { return nil }, nil
	}
	c, err := notionmap.OpenCache(ctx, a.cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return notionmap.NewCachedSource(src, c, a.logger), c.Close, nil
}
