package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "lookup <prefix>",
		Short: "List lexicon phrases starting with a prefix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				prefix := joinArgs(args)
				entries := a.hl.Suggest(prefix, limit)
				if len(entries) == 0 {
					return fmt.Errorf("no phrase starts with %q", prefix)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.Phrase, e.Type, e.Meaning, e.Level)
				}
				return tw.Flush()
			})
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of phrases (0 for all)")
	return c
}
