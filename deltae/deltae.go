// Package deltae measures perceptual distance between Lab colors with the
// CIEDE2000 color difference formula.
package deltae

import (
	"errors"
	"fmt"
	"math"
	"strings"

	chromathde "github.com/jkl1337/go-chromath/deltae"

	"github.com/mmuldo/colormatch/colorspace"
)

// LightnessWeight is the k_L divisor CIE2000 applies to the lightness term.
// The textbook value is 1; 0.01 scales lightness differences up by 100.
const LightnessWeight = 0.01

// pow257 is 25^7.
const pow257 = 6103515625.0

// ErrUnknownMetric is returned by Lookup for an unsupported metric name.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric reports the distance from needle to straw. Metrics are not required
// to be symmetric.
type Metric func(needle, straw colorspace.Lab) float64

// Metric names accepted by Lookup.
const (
	NameCIE2000  = "ciede2000"
	NameTextbook = "textbook"
)

// Lookup returns the metric registered under name. kl is the lightness weight
// used by the ciede2000 metric; zero selects LightnessWeight.
func Lookup(name string, kl float64) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameCIE2000:
		if kl == 0 {
			return CIE2000, nil
		}
		return Weighted(kl), nil
	case NameTextbook:
		return Textbook, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// CIE2000 returns the CIEDE2000 distance with the LightnessWeight divisor.
func CIE2000(needle, straw colorspace.Lab) float64 {
	return cie2000(needle, straw, LightnessWeight)
}

// Weighted returns CIE2000 with kl in place of LightnessWeight.
func Weighted(kl float64) Metric {
	return func(needle, straw colorspace.Lab) float64 {
		return cie2000(needle, straw, kl)
	}
}

var klch = &chromathde.KLChDefault

// Textbook returns go-chromath's reference CIEDE2000 implementation with unit
// weights. It is symmetric.
func Textbook(needle, straw colorspace.Lab) float64 {
	return chromathde.CIE2000(colorspace.ToChromath(straw), colorspace.ToChromath(needle), klch)
}

func cie2000(needle, straw colorspace.Lab, kl float64) float64 {
	needleChroma := math.Hypot(needle.A, needle.B)
	strawChroma := math.Hypot(straw.A, straw.B)

	lightnessBar := (needle.L + straw.L) / 2
	chromaBar7 := math.Pow((needleChroma+strawChroma)/2, 7)
	g := 1 - math.Sqrt(chromaBar7/(chromaBar7+pow257))

	needlePrimeA := needle.A + needle.A/2*g
	strawPrimeA := straw.A + straw.A/2*g
	needleChromaPrime := math.Hypot(needlePrimeA, needle.B)
	strawChromaPrime := math.Hypot(strawPrimeA, straw.B)
	chromaBarPrime := (needleChromaPrime + strawChromaPrime) / 2

	// Both hue angles collapse to 0 when the straw is neutral on b or its
	// corrected a is 0. The needle's own components are not consulted.
	var needleHue, strawHue float64
	if straw.B != 0 && strawPrimeA != 0 {
		strawHue = hueAngle(straw.B, strawPrimeA)
		needleHue = hueAngle(needle.B, needlePrimeA)
	}

	var deltaHue float64
	switch {
	case needleChroma == 0 || strawChroma == 0:
	case math.Abs(strawHue-needleHue) <= 180:
		deltaHue = needleHue - strawHue
	case needleHue <= strawHue:
		deltaHue = needleHue - strawHue + 360
	default:
		deltaHue = needleHue - strawHue - 360
	}

	hueBarPrime := (needleHue + strawHue) / 2
	if math.Abs(strawHue-needleHue) > 180 {
		hueBarPrime += 180
	}

	deltaLightness := needle.L - straw.L
	deltaChroma := needleChromaPrime - strawChromaPrime
	deltaH := 2 * math.Sqrt(needleChromaPrime*strawChromaPrime) * math.Sin(radians(deltaHue)/2)

	t := 1 -
		0.17*math.Cos(radians(hueBarPrime-30)) +
		0.24*math.Cos(radians(2*hueBarPrime)) +
		0.32*math.Cos(radians(3*hueBarPrime+6)) -
		0.2*math.Cos(radians(4*hueBarPrime-63))

	lb := math.Pow(lightnessBar-50, 2)
	sl := 1 + 0.015*lb/math.Sqrt(20+lb)
	sc := 1 + 0.045*chromaBarPrime
	sh := 1 + 0.015*chromaBarPrime*t

	chromaBarPrime7 := math.Pow(chromaBarPrime, 7)
	rt := -2 * math.Sqrt(chromaBarPrime7/(chromaBarPrime7+pow257)) *
		math.Sin(radians(60*math.Exp(-math.Pow((hueBarPrime-275)/25, 2))))

	lightness := deltaLightness / (kl * sl)
	chroma := deltaChroma / sc
	hue := deltaH / sh

	return math.Sqrt(lightness*lightness + chroma*chroma + hue*hue + rt*chroma*hue)
}

// hueAngle returns atan2(b, a) in degrees, within [0, 360).
func hueAngle(b, a float64) float64 {
	h := degrees(math.Atan2(b, a))
	if h < 0 {
		h += 360
	}
	return h
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
