package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/notionmap/internal/paths"
	"github.com/mesh-intelligence/notionmap/pkg/notionmap"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and open the cache",
		Long: "Creates config.yaml in the config directory when missing and\n" +
			"initializes the configured cache backend. Safe to run repeatedly.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := notionmap.OpenCache(cmd.Context(), a.cfg.Cache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			if err := c.Close(); err != nil {
				return fmt.Errorf("close cache: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", filepath.Join(a.configDir, paths.ConfigFile))
			fmt.Fprintf(out, "cache:  %s (%s)\n", cacheLocation(a), backendName(a))
			return nil
		},
	}
}
