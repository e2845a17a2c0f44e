// Package cmd implements the ordlys command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	dbPath     string
	lexicon    string
	own        string
	logLevel   string
	tails      bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "ordlys",
		Short:         "ordlys: highlight known vocabulary in web pages",
		Long:          "Scan text and web pages for phrases of a leveled word list, annotate them and record where they occur.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to ordlys.yaml")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides config)")
	pf.StringVar(&opts.lexicon, "lexicon", "", "main lexicon file or URL (overrides config)")
	pf.StringVar(&opts.own, "own", "", "own lexicon file or URL (overrides config)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.BoolVar(&opts.tails, "inflection-tails", false, "also index inflected forms as replacements of a phrase's last word")

	root.AddCommand(
		newScanCmd(opts),
		newHighlightCmd(opts),
		newIngestCmd(opts),
		newLookupCmd(opts),
		newLevelsCmd(opts),
		newWordsCmd(opts),
		newOwnCmd(opts),
		newRefreshCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func joinArgs(args []string) string { return strings.Join(args, " ") }
