package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/notionmap/pkg/notionmap"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// errClearTarget is returned when cache clear gets zero or several targets.
var errClearTarget = errors.New("specify exactly one of --key, --config, or --all")

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the record map cache",
	}
	cmd.AddCommand(newCacheClearCmd(a))
	return cmd
}

func newCacheClearCmd(a *app) *cobra.Command {
	var (
		key    string
		config bool
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached entries",
		Long: "Removes one key (--key), the site data and page content of the\n" +
			"configured root (--config), or every entry (--all).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := 0
			for _, set := range []bool{key != "", config, all} {
				if set {
					targets++
				}
			}
			if targets != 1 {
				return errClearTarget
			}

			ctx := cmd.Context()
			c, err := notionmap.OpenCache(ctx, a.cfg.Cache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			switch {
			case key != "":
				err := c.Delete(ctx, key)
				if errors.Is(err, types.ErrCacheMiss) {
					fmt.Fprintf(out, "not cached: %s\n", key)
					return nil
				}
				if err != nil {
					return fmt.Errorf("clear %s: %w", key, err)
				}
				fmt.Fprintf(out, "cleared: %s\n", key)
			case config:
				cleared, err := notionmap.ClearConfig(ctx, c, a.cfg.RootID)
				if err != nil {
					return fmt.Errorf("clear config: %w", err)
				}
				if a.flags.jsonMode {
					return writeJSON(out, cleared)
				}
				for _, k := range cleared {
					fmt.Fprintf(out, "cleared: %s\n", k)
				}
			default:
				if err := c.Clear(ctx); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				fmt.Fprintln(out, "cleared all entries")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "remove a single cache key")
	cmd.Flags().BoolVar(&config, "config", false, "remove the root's site data and page content")
	cmd.Flags().BoolVar(&all, "all", false, "remove every entry")
	return cmd
}
