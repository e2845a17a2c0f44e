package cmd

import (
	"context"
	"fmt"

	"github.com/japaniel/ordlys/pkg/db"
	"github.com/spf13/cobra"
)

func newOwnCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "own [on|off]",
		Short:     "Show or switch use of the own lexicon",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, false, func(ctx context.Context, a *app) error {
				if len(args) == 1 {
					var on bool
					switch args[0] {
					case "on":
						on = true
					case "off":
					default:
						return fmt.Errorf("expected on or off, got %q", args[0])
					}
					if err := a.hl.SetIncludeOwn(on); err != nil {
						return err
					}
				}
				on, err := db.LoadIncludeOwnOr(a.conn, a.cfg.IncludeOwnDefault())
				if err != nil {
					return err
				}
				state := "off"
				if on {
					state = "on"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "own lexicon: %s\n", state)
				return nil
			})
		},
	}
}
