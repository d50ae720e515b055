package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuldo/colormatch/colorspace"
)

// stripes paints n columns of each color in turn.
func stripes(h int, cols map[color.NRGBA]int, order []color.NRGBA) *image.NRGBA {
	w := 0
	for _, n := range cols {
		w += n
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	x := 0
	for _, c := range order {
		for i := 0; i < cols[c]; i++ {
			for y := 0; y < h; y++ {
				img.SetNRGBA(x, y, c)
			}
			x++
		}
	}
	return img
}

var (
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	opaqueBlue  = color.NRGBA{B: 255, A: 255}
	halfGreen   = color.NRGBA{G: 255, A: 51}
	transparent = color.NRGBA{R: 9, G: 9, B: 9}
)

func TestRank(t *testing.T) {
	order := []color.NRGBA{opaqueRed, opaqueBlue, halfGreen, transparent}
	img := stripes(2, map[color.NRGBA]int{opaqueRed: 1, opaqueBlue: 3, halfGreen: 1, transparent: 4}, order)

	got := Rank(img)
	assert.Equal(t, ColorCountList{
		{colorspace.RGB{Blue: 255}, 6},
		{colorspace.RGB{Green: 255, Alpha: 0.2}, 2},
		{colorspace.RGB{Red: 255}, 2},
	}, got)

	assert.Equal(t, []colorspace.Color{
		colorspace.RGB{Blue: 255},
		colorspace.RGB{Green: 255, Alpha: 0.2},
		colorspace.RGB{Red: 255},
	}, got.Colors())
}

func TestExtract(t *testing.T) {
	order := []color.NRGBA{opaqueRed, opaqueBlue}
	img := stripes(10, map[color.NRGBA]int{opaqueRed: 10, opaqueBlue: 30}, order)

	got, err := Extract(img, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 2)

	total := 0
	for _, cc := range got {
		total += cc.Count
	}
	assert.LessOrEqual(t, total, 400)
}

func TestExtractInvalidCount(t *testing.T) {
	img := stripes(2, map[color.NRGBA]int{opaqueRed: 2}, []color.NRGBA{opaqueRed})

	for _, n := range []int{0, -1} {
		got, err := Extract(img, n)
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Nil(t, got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripes.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, stripes(3, map[color.NRGBA]int{opaqueRed: 2}, []color.NRGBA{opaqueRed})))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 3), img.Bounds())
	assert.Equal(t, ColorCountList{{colorspace.RGB{Red: 255}, 6}}, Rank(img))

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
