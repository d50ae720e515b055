package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmuldo/colormatch/colorspace"
	"github.com/mmuldo/colormatch/render"
)

// errNotRGB is returned when mix is given a Lab color.
var errNotRGB = errors.New("mix needs rgb or hex colors")

func (a *app) newMixCmd() *cobra.Command {
	var weight float64
	cmd := &cobra.Command{
		Use:   "mix COLOR1 COLOR2",
		Short: "Mixes two RGB colors",
		Long: `Mixes COLOR1 into COLOR2 like the Sass mix() function. --weight is the
share of COLOR1; values above 1 are read as a percentage.`,
		Example: "  colormatch mix '#fff' 'rgb(95, 98, 98)' --weight 0.91",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := colorspace.ParseAll(args)
			if err != nil {
				return err
			}
			rgbs := make([]colorspace.RGB, len(colors))
			for i, c := range colors {
				rgb, ok := c.(colorspace.RGB)
				if !ok {
					return fmt.Errorf("%w: %v", errNotRGB, c)
				}
				rgbs[i] = rgb
			}

			conv, err := a.converter()
			if err != nil {
				return err
			}
			w, err := a.writer(cmd)
			if err != nil {
				return err
			}

			mixed := colorspace.Mix(rgbs[0], rgbs[1], weight)
			a.logger.Debug("colors mixed", "weight", weight, "result", mixed)
			return w.Write(render.FromColors([]colorspace.Color{mixed}, conv))
		},
	}

	cmd.Flags().Float64VarP(&weight, "weight", "w", 0.5, "share of COLOR1, 0-1 or a percentage")
	return cmd
}
