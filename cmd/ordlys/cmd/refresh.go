package cmd

import (
	"context"
	"fmt"

	"github.com/japaniel/ordlys/pkg/dictionary"
	"github.com/spf13/cobra"
)

func newRefreshCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Update stored phrase meanings and levels from the current lexicon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				im := dictionary.NewImporter(a.conn, a.hl.Index())
				im.Logger = a.logger
				n, err := im.ProcessUpdates()
				if err != nil {
					return fmt.Errorf("failed to update phrases: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d phrases.\n", n)
				return nil
			})
		},
	}
}
