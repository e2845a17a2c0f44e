package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLevelsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "levels",
		Short: "List difficulty levels and switch them on or off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "LEVEL\tWORDS\tENABLED\tCOLOR")
				for _, l := range a.hl.Levels() {
					fmt.Fprintf(tw, "%d\t%d\t%t\t%s\n", l.Level, l.Words, l.Enabled, l.Color)
				}
				return tw.Flush()
			})
		},
	}
	c.AddCommand(levelToggleCmd(opts, "enable", true), levelToggleCmd(opts, "disable", false))
	return c
}

func levelToggleCmd(opts *rootOptions, name string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <level>...",
		Short: strings.ToUpper(name[:1]) + name[1:] + " difficulty levels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := make([]int, 0, len(args))
			for _, arg := range args {
				l, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid level %q", arg)
				}
				levels = append(levels, l)
			}
			return withApp(cmd, opts, false, func(ctx context.Context, a *app) error {
				for _, l := range levels {
					if err := a.hl.SetLevelEnabled(l, enabled); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "level %d %sd\n", l, name)
				}
				return nil
			})
		},
	}
}
