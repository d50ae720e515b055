package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mmuldo/colormatch/colorspace"
	"github.com/mmuldo/colormatch/render"
)

func (a *app) newLabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lab COLOR...",
		Short: "Converts colors to CIELAB",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := colorspace.ParseAll(args)
			if err != nil {
				return err
			}
			conv, err := a.converter()
			if err != nil {
				return err
			}
			w, err := a.writer(cmd)
			if err != nil {
				return err
			}
			return w.Write(render.FromColors(colors, conv))
		},
	}
}
