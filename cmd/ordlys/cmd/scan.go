package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/japaniel/ordlys/pkg/lexicon"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var file string
	var statsOnly bool
	c := &cobra.Command{
		Use:   "scan [text...]",
		Short: "Find lexicon phrases in text and print them as JSON",
		Long:  "Scan text given as arguments, read from --file, or read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, file)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				matches := a.hl.Scan(text)
				stats := lexicon.NewPageStats()
				stats.Add(matches)

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if statsOnly {
					return enc.Encode(stats)
				}
				if matches == nil {
					matches = []lexicon.Match{}
				}
				return enc.Encode(struct {
					Matches []lexicon.Match   `json:"matches"`
					Stats   lexicon.PageStats `json:"stats"`
				}{matches, stats})
			})
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "read text from file")
	c.Flags().BoolVar(&statsOnly, "stats", false, "print only level statistics")
	return c
}

func readText(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
