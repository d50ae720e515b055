package colorspace

import (
	"fmt"
	"math"
	"strings"

	"github.com/jkl1337/go-chromath"
)

// D65 reference white, scaled to Y = 100.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// Converter maps any Color into Lab.
type Converter interface {
	ToLab(c Color) Lab
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(c Color) Lab

// ToLab calls f(c).
func (f ConverterFunc) ToLab(c Color) Lab { return f(c) }

// Standard converts with the sRGB/D65 pipeline implemented by ToLab.
var Standard Converter = ConverterFunc(ToLab)

// ToLab returns the Lab form of c. Lab input is passed through with its alpha
// defaulted to 1; RGB input goes through gamma expansion, the sRGB to XYZ
// matrix and the XYZ to Lab transform against D65 white. Inputs are not
// range checked.
func ToLab(c Color) Lab {
	switch c := c.(type) {
	case Lab:
		c.Alpha = opacity(c.Alpha)
		return c
	case RGB:
		return rgbToLab(c)
	}
	panic(fmt.Sprintf("colorspace: unexpected color type %T", c))
}

func rgbToLab(c RGB) Lab {
	r := expand(float64(c.Red)/255) * 100
	g := expand(float64(c.Green)/255) * 100
	b := expand(float64(c.Blue)/255) * 100

	x := r*0.4124 + g*0.3576 + b*0.1805
	y := r*0.2126 + g*0.7152 + b*0.0722
	z := r*0.0193 + g*0.1192 + b*0.9505

	fx := pivot(x / whiteX)
	fy := pivot(y / whiteY)
	fz := pivot(z / whiteZ)

	return Lab{
		L:     116*fy - 16,
		A:     500 * (fx - fy),
		B:     200 * (fy - fz),
		Alpha: opacity(c.Alpha),
	}
}

// expand removes the sRGB transfer curve from a 0-1 channel.
func expand(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func pivot(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116
}

// Illuminant names a reference white for NewTransformer.
type Illuminant string

const (
	D65 Illuminant = "d65"
	D50 Illuminant = "d50"
)

// ParseIlluminant resolves a case-insensitive illuminant name.
func ParseIlluminant(s string) (Illuminant, error) {
	switch il := Illuminant(strings.ToLower(strings.TrimSpace(s))); il {
	case D65, D50:
		return il, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIlluminant, s)
}

// NewTransformer returns a Converter backed by go-chromath's RGB and Lab
// transformers, chromatically adapted (Bradford) to the given white point.
// Channels are clamped to 0-255 by the 8-bit scaler. Lab input passes through
// as with ToLab.
func NewTransformer(il Illuminant) Converter {
	target := &chromath.IlluminantRefD65
	if il == D50 {
		target = &chromath.IlluminantRefD50
	}
	rgb2Xyz := chromath.NewRGBTransformer(
		&chromath.SpaceSRGB,
		&chromath.AdaptationBradford,
		target,
		&chromath.Scaler8bClamping,
		1.0,
		nil,
	)
	lab2Xyz := chromath.NewLabTransformer(target)

	return ConverterFunc(func(c Color) Lab {
		rgb, ok := c.(RGB)
		if !ok {
			return ToLab(c)
		}
		xyz := rgb2Xyz.Convert(chromath.RGB{float64(rgb.Red), float64(rgb.Green), float64(rgb.Blue)})
		lab := lab2Xyz.Invert(xyz)
		return Lab{L: lab.L(), A: lab.A(), B: lab.B(), Alpha: opacity(rgb.Alpha)}
	})
}

// ToChromath converts a Lab value into go-chromath's representation. Alpha is
// dropped.
func ToChromath(c Lab) chromath.Lab {
	return chromath.Lab{c.L, c.A, c.B}
}
