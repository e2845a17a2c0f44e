package cmd

import (
	"context"
	"fmt"

	"github.com/japaniel/ordlys/pkg/dictionary"
	"github.com/japaniel/ordlys/pkg/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever a local lexicon file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				var files []string
				for _, src := range []string{a.cfg.Lexicon.Main, a.cfg.Lexicon.Own} {
					if src != "" && !dictionary.IsURL(src) {
						files = append(files, src)
					}
				}
				w, err := watch.New(files, a.cfg.Highlighter.Debounce, func(ctx context.Context, path string) {
					if err := a.hl.Reload(ctx); err != nil {
						a.logger.Warn("reload failed", "path", path, "error", err)
						return
					}
					a.logger.Info("index rebuilt", "phrases", a.hl.Index().Len())
				}, a.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "watching %d lexicon files, %d phrases indexed\n", len(files), a.hl.Index().Len())
				return w.Run(ctx)
			})
		},
	}
}
