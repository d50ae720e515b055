// Package colorspace holds the two color representations the matcher accepts
// and the conversion from device RGB into CIELAB.
package colorspace

import (
	"fmt"
	"strconv"
)

// Color is either an RGB or a Lab value. The interface is sealed so a type
// switch over RGB and Lab covers every case.
type Color interface {
	isColor()
}

// RGB represents a device-space color with 0-255 channels. An Alpha of 0 is
// read as "not set" and treated as fully opaque.
type RGB struct {
	Red   int     `json:"red" yaml:"red"`
	Green int     `json:"green" yaml:"green"`
	Blue  int     `json:"blue" yaml:"blue"`
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
}

// Lab represents a CIELAB color. L runs 0-100, A and B are signed.
type Lab struct {
	L     float64 `json:"l" yaml:"l"`
	A     float64 `json:"a" yaml:"a"`
	B     float64 `json:"b" yaml:"b"`
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
}

func (RGB) isColor() {}
func (Lab) isColor() {}

func (c RGB) String() string {
	if c.Alpha == 0 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.Red, c.Green, c.Blue)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.Red, c.Green, c.Blue, formatFloat(c.Alpha))
}

func (c Lab) String() string {
	if c.Alpha == 0 {
		return fmt.Sprintf("lab(%s, %s, %s)", formatFloat(c.L), formatFloat(c.A), formatFloat(c.B))
	}
	return fmt.Sprintf("lab(%s, %s, %s, %s)", formatFloat(c.L), formatFloat(c.A), formatFloat(c.B), formatFloat(c.Alpha))
}

// Hex returns the #rrggbb form of an RGB color. Channels outside 0-255 are
// clamped for display only.
func Hex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.Red), clampByte(c.Green), clampByte(c.Blue))
}

// opacity returns alpha, defaulting an unset (zero) alpha to 1.
func opacity(alpha float64) float64 {
	if alpha == 0 {
		return 1
	}
	return alpha
}

func clampByte(v int) byte {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return byte(v)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
