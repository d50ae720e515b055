package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmuldo/colormatch/colorspace"
)

func (a *app) newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance NEEDLE STRAW",
		Short: "Prints the distance between two colors",
		Long: `Prints the distance from NEEDLE to STRAW under the selected metric.
The ciede2000 metric is not symmetric when STRAW has no b component.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := colorspace.ParseAll(args)
			if err != nil {
				return err
			}
			conv, err := a.converter()
			if err != nil {
				return err
			}
			m, err := a.metric()
			if err != nil {
				return err
			}

			d := m(conv.ToLab(colors[0]), conv.ToLab(colors[1]))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", d)
			return err
		},
	}
}
