package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// redacted replaces secrets in config show output.
const redacted = "***"

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(redact(a.cfg))
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

func redact(cfg types.Config) types.Config {
	if cfg.IntegrationToken != "" {
		cfg.IntegrationToken = redacted
	}
	if cfg.TokenV2 != "" {
		cfg.TokenV2 = redacted
	}
	if cfg.Cache.RedisPassword != "" {
		cfg.Cache.RedisPassword = redacted
	}
	return cfg
}
