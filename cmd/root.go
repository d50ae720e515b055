// Package cmd implements the colormatch command line.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mmuldo/colormatch/colorspace"
	"github.com/mmuldo/colormatch/deltae"
	"github.com/mmuldo/colormatch/image"
	"github.com/mmuldo/colormatch/internal/logging"
	"github.com/mmuldo/colormatch/palette"
	"github.com/mmuldo/colormatch/render"
)

// errNoPalette is returned when a query runs without any reference colors.
var errNoPalette = errors.New("no reference colors: use --palette, --image or a config file")

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

// Execute runs the colormatch command against os.Args.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the colormatch command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "colormatch",
		Short: "Finds perceptually nearest and farthest colors",
		Long: `colormatch ranks a palette of reference colors against a query color
using the CIEDE2000 color difference formula.

Colors are written as #rrggbb, rgb(r, g, b), rgba(r, g, b, a),
lab(l, a, b) or lab(l, a, b, alpha). The palette comes from --palette,
from the dominant colors of --image, or from the "palette" list in
$HOME/.colormatch.yaml.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.colormatch.yaml)")
	f.StringArrayP("palette", "p", nil, "reference color, repeatable")
	f.StringP("image", "i", "", "seed the palette with the dominant colors of an image")
	f.Int("colors", 8, "number of colors to take from --image")
	f.StringP("metric", "m", deltae.NameCIE2000, "distance metric: ciede2000 or textbook")
	f.Float64("lightness-weight", deltae.LightnessWeight, "lightness weight (k_L) for the ciede2000 metric")
	f.String("illuminant", string(colorspace.D65), "reference white for RGB conversion: d65 or d50")
	f.StringP("format", "f", string(render.Text), "output format: text, json, yaml or template")
	f.String("template", "", "pongo2 template rendered per color with --format template")
	f.Bool("swatch", false, "prefix text output with a color swatch")
	f.String("log-level", "warn", "log level: debug, info, warn or error")
	f.Bool("no-color", false, "disable colored log output")

	if err := bindFlags(a.v, f, configKeys); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		a.newCompareCmd("nearest", false),
		a.newCompareCmd("farthest", true),
		a.newDistanceCmd(),
		a.newLabCmd(),
		a.newExtractCmd(),
		a.newMixCmd(),
	)

	return rootCmd
}

// configKeys are the persistent flags that can also be set from the config
// file or COLORMATCH_* environment variables.
var configKeys = []string{
	"palette", "image", "colors", "metric", "lightness-weight", "illuminant",
	"format", "template", "swatch", "log-level", "no-color",
}

// bindFlags binds each named flag of fs to the viper key of the same name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names []string) error {
	for _, name := range names {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// setup reads in the config file and ENV variables, then builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".colormatch")
	}

	a.v.SetEnvPrefix("colormatch")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cfgErr := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if cfgErr != nil && (a.cfgFile != "" || !errors.As(cfgErr, &notFound)) {
		return fmt.Errorf("read config: %w", cfgErr)
	}

	level, err := logging.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.logger = logging.New(cmd.ErrOrStderr(), level, a.v.GetBool("no-color"))
	if cfgErr == nil {
		a.logger.Debug("using config file", "path", a.v.ConfigFileUsed())
	}

	return nil
}

func (a *app) converter() (colorspace.Converter, error) {
	il, err := colorspace.ParseIlluminant(a.v.GetString("illuminant"))
	if err != nil {
		return nil, err
	}
	if il == colorspace.D65 {
		return colorspace.Standard, nil
	}
	return colorspace.NewTransformer(il), nil
}

func (a *app) metric() (deltae.Metric, error) {
	return deltae.Lookup(a.v.GetString("metric"), a.v.GetFloat64("lightness-weight"))
}

// buildPalette builds the haystack from the configured colors and image.
func (a *app) buildPalette() (*palette.Palette, error) {
	conv, err := a.converter()
	if err != nil {
		return nil, err
	}
	m, err := a.metric()
	if err != nil {
		return nil, err
	}

	colors, err := colorspace.ParseAll(a.v.GetStringSlice("palette"))
	if err != nil {
		return nil, err
	}

	p := palette.New(colors,
		palette.WithConverter(conv),
		palette.WithMetric(m),
		palette.WithLogger(a.logger),
	)

	if path := a.v.GetString("image"); path != "" {
		ccl, err := a.extract(path, a.v.GetInt("colors"))
		if err != nil {
			return nil, err
		}
		p.Add(ccl.Colors()...)
	}

	a.logger.Info("palette loaded", "size", p.Len())
	return p, nil
}

func (a *app) extract(path string, num int) (image.ColorCountList, error) {
	if num < 1 {
		return nil, fmt.Errorf("--colors: %w: got %d", image.ErrInvalidCount, num)
	}
	img, err := image.Load(path)
	if err != nil {
		return nil, err
	}
	ccl, err := image.Extract(img, num)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("extracted image colors", "path", path, "colors", len(ccl))
	return ccl, nil
}

func (a *app) writer(cmd *cobra.Command) (*render.Writer, error) {
	format, err := render.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return nil, err
	}
	return render.NewWriter(cmd.OutOrStdout(), render.Options{
		Format:   format,
		Template: a.v.GetString("template"),
		Swatch:   a.v.GetBool("swatch"),
	})
}
