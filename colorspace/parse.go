package colorspace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
	// ErrUnknownIlluminant is returned for an unsupported white point name.
	ErrUnknownIlluminant = errors.New("unknown illuminant")
)

// Parse reads a color written as #rgb, #rrggbb, rgb(r, g, b),
// rgba(r, g, b, a), lab(l, a, b) or lab(l, a, b, alpha).
func Parse(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba("):
		return parseRGB(s, "rgba(", 4)
	case strings.HasPrefix(s, "rgb("):
		return parseRGB(s, "rgb(", 3)
	case strings.HasPrefix(s, "lab("):
		return parseLab(s)
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// ParseAll parses every string in ss, stopping at the first failure.
func ParseAll(ss []string) ([]Color, error) {
	colors := make([]Color, 0, len(ss))
	for _, s := range ss {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func parseHex(s string) (Color, error) {
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{Red: int(r), Green: int(g), Blue: int(b)}, nil
}

func parseRGB(s, prefix string, n int) (Color, error) {
	args, err := arguments(s, prefix, n)
	if err != nil {
		return nil, err
	}

	var ch [3]int
	for i := range ch {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		ch[i] = v
	}

	c := RGB{Red: ch[0], Green: ch[1], Blue: ch[2]}
	if n == 4 {
		a, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		c.Alpha = a
	}
	return c, nil
}

func parseLab(s string) (Color, error) {
	args, err := arguments(s, "lab(", 3, 4)
	if err != nil {
		return nil, err
	}

	vs := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		vs[i] = v
	}

	c := Lab{L: vs[0], A: vs[1], B: vs[2]}
	if len(vs) == 4 {
		c.Alpha = vs[3]
	}
	return c, nil
}

// arguments splits the comma separated body of a functional color notation
// and checks the argument count against the accepted counts.
func arguments(s, prefix string, counts ...int) ([]string, error) {
	if !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("%w: %q: missing ')'", ErrInvalidColor, s)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")")

	args := strings.Split(body, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}

	for _, n := range counts {
		if len(args) == n {
			return args, nil
		}
	}
	return nil, fmt.Errorf("%w: %q: wrong number of components", ErrInvalidColor, s)
}
