package colorspace

import "math"

// Mix blends a into b the way Sass mix() does: weight is the share of a, 0.5
// by default. A weight above 1 is read as a percentage and capped at 100.
// Channels are rounded to integers and alpha, defaulting to 1, to three
// decimals.
func Mix(a, b RGB, weight float64) RGB {
	if weight > 1 {
		weight = math.Min(weight, 100) / 100
	}

	channel := func(x, y int) int {
		fx, fy := float64(x)/255, float64(y)/255
		return int(roundHalfUp((fy + (fx-fy)*weight) * 255))
	}

	aa, ab := opacity(a.Alpha), opacity(b.Alpha)
	return RGB{
		Red:   channel(a.Red, b.Red),
		Green: channel(a.Green, b.Green),
		Blue:  channel(a.Blue, b.Blue),
		Alpha: roundHalfUp((ab+(aa-ab)*weight)*1000) / 1000,
	}
}

// roundHalfUp rounds ties toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
