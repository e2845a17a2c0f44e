package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/japaniel/ordlys/pkg/lexicon"
	"github.com/japaniel/ordlys/pkg/page"
	"github.com/spf13/cobra"
)

func newHighlightCmd(opts *rootOptions) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "highlight <url|file>",
		Short: "Annotate a page with marks around known phrases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				src, err := page.Load(ctx, &http.Client{Timeout: 30 * time.Second}, args[0])
				if err != nil {
					return err
				}

				var w io.Writer = cmd.OutOrStdout()
				if out != "" {
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				stats, err := page.Annotate(w, bytes.NewReader(src.Body), a.hl)
				if err != nil {
					return err
				}
				printStats(cmd.ErrOrStderr(), stats)
				return nil
			})
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "write annotated HTML to file instead of stdout")
	return c
}

func printStats(w io.Writer, stats lexicon.PageStats) {
	fmt.Fprintf(w, "%d leveled phrases\n", stats.Total)
	levels := make([]int, 0, len(stats.ByLevel))
	for l := range stats.ByLevel {
		levels = append(levels, l)
	}
	slices.Sort(levels)
	for _, l := range levels {
		fmt.Fprintf(w, "  level %-5d %5d  %5.1f%%\n", l, stats.ByLevel[l], stats.Share(l))
	}
}
