package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mmuldo/colormatch/colorspace"
	"github.com/mmuldo/colormatch/render"
)

// newCompareCmd returns the nearest or farthest command.
func (a *app) newCompareCmd(use string, farthest bool) *cobra.Command {
	order := "nearest"
	if farthest {
		order = "farthest"
	}

	var amount int
	cmd := &cobra.Command{
		Use:   use + " QUERY",
		Short: "Lists the palette colors " + order + " to a query color",
		Long: `Lists palette colors ordered ` + order + ` first, with their distance to
the query. Colors at equal distance keep their palette order.`,
		Example: "  colormatch " + use + " '#ff3c0a' -p '#ff0000' -p '#00ff00' -n 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := colorspace.Parse(args[0])
			if err != nil {
				return err
			}

			p, err := a.buildPalette()
			if err != nil {
				return err
			}
			w, err := a.writer(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("amount") && a.v.IsSet("amount") {
				amount = a.v.GetInt("amount")
			}

			ms, ok := p.Matches(query, amount, farthest)
			if !ok {
				return errNoPalette
			}
			a.logger.Debug("query ranked", "query", query, "amount", amount, "results", len(ms))
			return w.Write(render.FromMatches(ms))
		},
	}

	cmd.Flags().IntVarP(&amount, "amount", "n", 1, "number of colors to list")
	return cmd
}
