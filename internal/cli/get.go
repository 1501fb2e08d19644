package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Resolve a page, database, or URL into a record map",
		Long: "Resolves one identifier and prints the record map as JSON. The\n" +
			"identifier may be a dashed or undashed id or a page URL. Unknown\n" +
			"pages print an empty record map.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeFn, err := a.source(cmd.Context(), !noCache)
			if err != nil {
				return err
			}
			defer closeFn()

			m, err := src.GetRecordMap(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache")
	return cmd
}

func newBlocksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks <id>...",
		Short: "Fetch the direct children of one or more blocks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := a.source(cmd.Context(), false)
			if err != nil {
				return err
			}
			m, err := src.GetBlocks(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("get blocks %s: %w", strings.Join(args, ","), err)
			}
			return writeJSON(cmd.OutOrStdout(), m)
		},
	}
}

func newPagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the pages of the root database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := a.source(cmd.Context(), false)
			if err != nil {
				return err
			}
			ids, err := src.PageIDs(cmd.Context())
			if err != nil {
				return fmt.Errorf("list pages: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), ids)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
