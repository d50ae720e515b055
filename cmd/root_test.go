package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuldo/colormatch/colorspace"
	"github.com/mmuldo/colormatch/deltae"
	imagepkg "github.com/mmuldo/colormatch/image"
)

var primaries = []string{
	"--palette", "#ff0000",
	"--palette", "#ffff00",
	"--palette", "#ff00ff",
	"--palette", "#00ffff",
	"--palette", "#00ff00",
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func firstColumns(out string, n int) []string {
	var cols []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		cols = append(cols, strings.Join(strings.Split(line, "\t")[:n], " "))
	}
	return cols
}

func TestNearest(t *testing.T) {
	out, err := run(t, append([]string{"nearest", "rgb(255, 60, 10)"}, primaries...)...)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 rgb(255, 0, 0)"}, firstColumns(out, 2))
}

func TestFarthest(t *testing.T) {
	args := append([]string{"farthest", "rgb(255, 50, 50)", "-n", "2"}, primaries...)
	args = args[:len(args):len(args)]

	// Default 0.01 lightness weight: yellow's lightness gap wins.
	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 rgb(255, 255, 0)", "2 rgb(0, 255, 255)"}, firstColumns(out, 2))

	// Unit weight and the textbook metric give the documented example,
	// green then cyan.

	out, err = run(t, append(args, "--lightness-weight", "1")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 rgb(0, 255, 0)", "2 rgb(0, 255, 255)"}, firstColumns(out, 2))

	out, err = run(t, append(args, "--metric", "textbook")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 rgb(0, 255, 0)", "2 rgb(0, 255, 255)"}, firstColumns(out, 2))
}

func TestNearestEmptyPalette(t *testing.T) {
	_, err := run(t, "nearest", "#ff0000")
	assert.ErrorIs(t, err, errNoPalette)
}

func TestNearestJSON(t *testing.T) {
	out, err := run(t, append([]string{"nearest", "#ff0000", "-n", "10", "-f", "json"}, primaries...)...)
	require.NoError(t, err)

	var got []struct {
		Rank     int     `json:"rank"`
		Hex      string  `json:"hex"`
		Distance float64 `json:"distance"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 5)
	assert.Equal(t, "#ff0000", got[0].Hex)
	assert.Equal(t, 0.0, got[0].Distance)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
		assert.Equal(t, i+1, got[i].Rank)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "colormatch.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`palette:
  - "#00ff00"
  - "lab(53.2329, 80.1093, 67.2201)"
  - "#0000ff"
amount: 2
format: template
template: "{{ rank }}:{{ color }}"
`), 0o644))

	out, err := run(t, "nearest", "#ff0000", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1:lab(53.2329, 80.1093, 67.2201)\n2:rgb(0, 0, 255)\n", out)

	_, err = run(t, "nearest", "#ff0000", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestImagePalette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "red.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	for _, args := range [][]string{
		{"nearest", "#ff0000", "--image", path, "--colors", "1"},
		{"extract", path, "--colors", "2"},
	} {
		out, err := run(t, append(args, "-f", "json")...)
		require.NoError(t, err)

		var got []struct {
			Lab colorspace.Lab `json:"lab"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.InDelta(t, 53.23, got[0].Lab.L, 2)
		assert.InDelta(t, 80.11, got[0].Lab.A, 2)
	}
}

func TestExtractInvalidCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	require.NoError(t, f.Close())

	for _, n := range []string{"0", "-1"} {
		t.Run(n, func(t *testing.T) {
			_, err := run(t, "extract", path, "--colors", n)
			assert.ErrorIs(t, err, imagepkg.ErrInvalidCount)

			_, err = run(t, "nearest", "#ff0000", "--image", path, "--colors", n)
			assert.ErrorIs(t, err, imagepkg.ErrInvalidCount)
		})
	}
}

func TestMix(t *testing.T) {
	out, err := run(t, "mix", "#fff", "rgb(95, 98, 98)", "--weight", "0.91")
	require.NoError(t, err)
	assert.Equal(t, []string{"1 rgba(241, 241, 241, 1) #f1f1f1"}, firstColumns(out, 3))

	out, err = run(t, "mix", "#fff", "rgb(95, 98, 98)", "-w", "91", "-f", "template", "--template", "{{ red }} {{ green }}")
	require.NoError(t, err)
	assert.Equal(t, "241 241\n", out)

	out, err = run(t, "mix", "#ff0000", "#0000ff", "-f", "template", "--template", "{{ hex }}")
	require.NoError(t, err)
	assert.Equal(t, "#800080\n", out)

	_, err = run(t, "mix", "#fff", "lab(50, 0, 0)")
	assert.ErrorIs(t, err, errNotRGB)
}

func TestBindFlags(t *testing.T) {
	root := NewRootCmd()
	for _, name := range configKeys {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	err := bindFlags(viper.New(), root.PersistentFlags(), []string{"palette", "pallete"})
	assert.ErrorContains(t, err, "pallete")
}

func TestDistance(t *testing.T) {
	out, err := run(t, "distance", "lab(100, 0, 0)", "lab(0, 0, 0)")
	require.NoError(t, err)
	assert.Equal(t, "10000.0000\n", out)

	needle, straw := colorspace.Lab{L: 50, A: 20, B: 30}, colorspace.Lab{L: 50, A: 20}
	out, err = run(t, "distance", needle.String(), straw.String(), "--metric", "ciede2000")
	require.NoError(t, err)
	assert.Equal(t, "6.6040\n", out)

	out, err = run(t, "distance", straw.String(), needle.String())
	require.NoError(t, err)
	assert.Equal(t, "19.9170\n", out)
	assert.InDelta(t, 19.9170, deltae.CIE2000(colorspace.ToLab(straw), colorspace.ToLab(needle)), 1e-4)
}

func TestLab(t *testing.T) {
	out, err := run(t, "lab", "#ff0000", "lab(1, 2, 3)")
	require.NoError(t, err)
	assert.Equal(t,
		"1\trgb(255, 0, 0)\t#ff0000\tlab(53.2329, 80.1093, 67.2201)\n"+
			"2\tlab(1, 2, 3)\tlab(1.0000, 2.0000, 3.0000)\n",
		out)

	out, err = run(t, "lab", "#ffffff", "--illuminant", "d50", "-f", "template", "--template", "{{ l|floatformat:0 }}")
	require.NoError(t, err)
	assert.Equal(t, "100\n", out)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"BadQuery", []string{"nearest", "nope", "-p", "#000"}},
		{"BadPalette", []string{"nearest", "#000", "-p", "rgb(1)"}},
		{"BadMetric", []string{"nearest", "#000", "-p", "#000", "-m", "cie76"}},
		{"BadIlluminant", []string{"lab", "#000", "--illuminant", "a"}},
		{"BadFormat", []string{"lab", "#000", "-f", "xml"}},
		{"BadLogLevel", []string{"lab", "#000", "--log-level", "loud"}},
		{"MissingImage", []string{"extract", "missing.png"}},
		{"ArgCount", []string{"distance", "#000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
