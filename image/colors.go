// Package image extracts reference colors from images so a palette can be
// seeded from artwork.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/esimov/colorquant"

	"github.com/mmuldo/colormatch/colorspace"
)

var (
	// ErrNoColors is returned when an image has no opaque pixels.
	ErrNoColors = errors.New("image has no opaque pixels")
	// ErrInvalidCount is returned when fewer than one color is requested.
	ErrInvalidCount = errors.New("color count must be at least 1")
)

// ColorCount is a color and the number of pixels it covers.
type ColorCount struct {
	Color colorspace.RGB
	Count int
}

// ColorCountList sorts by descending count, then by hex value.
type ColorCountList []ColorCount

func (ccl ColorCountList) Len() int { return len(ccl) }
func (ccl ColorCountList) Less(i, j int) bool {
	if ccl[i].Count != ccl[j].Count {
		return ccl[i].Count > ccl[j].Count
	}
	return colorspace.Hex(ccl[i].Color) < colorspace.Hex(ccl[j].Color)
}
func (ccl ColorCountList) Swap(i, j int) { ccl[i], ccl[j] = ccl[j], ccl[i] }

// Colors returns the colors in list order.
func (ccl ColorCountList) Colors() []colorspace.Color {
	cs := make([]colorspace.Color, len(ccl))
	for i, cc := range ccl {
		cs[i] = cc.Color
	}
	return cs
}

// Rank counts every non-transparent pixel of img and returns the distinct
// colors, most common first.
func Rank(img image.Image) ColorCountList {
	m := make(map[colorspace.RGB]int)

	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			rgb := colorspace.RGB{Red: int(c.R), Green: int(c.G), Blue: int(c.B)}
			if c.A != 255 {
				rgb.Alpha = float64(c.A) / 255
			}
			m[rgb]++
		}
	}

	ccl := make(ColorCountList, 0, len(m))
	for k, v := range m {
		ccl = append(ccl, ColorCount{k, v})
	}

	sort.Sort(ccl)
	return ccl
}

// Extract quantizes img down to at most num colors and returns them ranked by
// the area they cover.
func Extract(img image.Image, num int) (ColorCountList, error) {
	if num < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, num)
	}

	b := img.Bounds()
	o := image.NewNRGBA(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y))
	colorquant.NoDither.Quantize(img, o, num, false, true)

	ccl := Rank(o)
	if len(ccl) == 0 {
		return nil, ErrNoColors
	}
	if len(ccl) > num {
		ccl = ccl[:num]
	}
	return ccl, nil
}
