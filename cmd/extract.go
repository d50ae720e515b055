package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mmuldo/colormatch/render"
)

func (a *app) newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract IMAGE",
		Short: "Lists the dominant colors of an image",
		Long: `Quantizes IMAGE down to --colors colors and lists them by the area they
cover. The output can be pasted into the palette list of a config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ccl, err := a.extract(args[0], a.v.GetInt("colors"))
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
			return w.Write(render.FromColors(ccl.Colors(), conv))
		},
	}
}
