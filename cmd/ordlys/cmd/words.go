package cmd

import (
	"context"
	"fmt"

	"github.com/japaniel/ordlys/pkg/db"
	"github.com/spf13/cobra"
)

func newWordsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "words",
		Short: "Manage words excluded from highlighting",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List disabled words",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, false, func(ctx context.Context, a *app) error {
					words, err := db.LoadDisabledWords(a.conn)
					if err != nil {
						return err
					}
					for _, w := range words.Sorted() {
						fmt.Fprintln(cmd.OutOrStdout(), w)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "disable <word or phrase>",
			Short: "Stop highlighting a word or phrase",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, false, func(ctx context.Context, a *app) error {
					phrase, err := a.hl.DisableWord(joinArgs(args))
					if err != nil {
						return err
					}
					if phrase == "" {
						return fmt.Errorf("%q contains no letters", joinArgs(args))
					}
					fmt.Fprintf(cmd.OutOrStdout(), "disabled %q\n", phrase)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "restore <word or phrase>",
			Short: "Highlight a disabled word or phrase again",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, false, func(ctx context.Context, a *app) error {
					if err := a.hl.RestoreWord(joinArgs(args)); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "restored %q\n", joinArgs(args))
					return nil
				})
			},
		},
	)
	return c
}
