// Package render writes colors and match results in the output formats the
// colormatch command supports.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flosch/pongo2"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/mmuldo/colormatch/colorspace"
	"github.com/mmuldo/colormatch/palette"
)

// Format selects how records are written.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Template Format = "template"
)

var (
	// ErrUnknownFormat is returned by ParseFormat.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrNoTemplate is returned when the template format has no template.
	ErrNoTemplate = errors.New("template format requires a template")
)

// ParseFormat resolves a case-insensitive format name. Empty means Text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, JSON, YAML, Template:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Record is one rendered color.
type Record struct {
	Rank     int              `json:"rank" yaml:"rank"`
	Color    string           `json:"color" yaml:"color"`
	Hex      string           `json:"hex,omitempty" yaml:"hex,omitempty"`
	Lab      colorspace.Lab   `json:"lab" yaml:"lab"`
	Distance *float64         `json:"distance,omitempty" yaml:"distance,omitempty"`
	Source   colorspace.Color `json:"-" yaml:"-"`
}

// FromMatches builds ranked records from palette matches.
func FromMatches(ms []palette.Match) []Record {
	rs := make([]Record, len(ms))
	for i, m := range ms {
		d := m.Distance
		rs[i] = newRecord(i+1, m.Source, m.Lab)
		rs[i].Distance = &d
	}
	return rs
}

// FromColors builds records for plain colors, converting each with conv.
func FromColors(cs []colorspace.Color, conv colorspace.Converter) []Record {
	rs := make([]Record, len(cs))
	for i, c := range cs {
		rs[i] = newRecord(i+1, c, conv.ToLab(c))
	}
	return rs
}

func newRecord(rank int, c colorspace.Color, lab colorspace.Lab) Record {
	r := Record{
		Rank:   rank,
		Color:  fmt.Sprint(c),
		Lab:    lab,
		Source: c,
	}
	if rgb, ok := c.(colorspace.RGB); ok {
		r.Hex = colorspace.Hex(rgb)
	}
	return r
}

// Options configures a Writer.
type Options struct {
	Format   Format
	Template string
	// Swatch prefixes text lines with a block painted in the color, when the
	// terminal supports it.
	Swatch bool
}

// Writer renders records to an io.Writer.
type Writer struct {
	w    io.Writer
	opts Options
	tpl  *pongo2.Template
	term *termenv.Output
}

// NewWriter validates opts and compiles the template, if any.
func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	if opts.Format == "" {
		opts.Format = Text
	}
	rw := &Writer{w: w, opts: opts}

	switch opts.Format {
	case Template:
		if opts.Template == "" {
			return nil, ErrNoTemplate
		}
		tpl, err := pongo2.FromString(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("parse template: %w", err)
		}
		rw.tpl = tpl
	case Text:
		rw.term = termenv.NewOutput(w)
	case JSON, YAML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	return rw, nil
}

// Write renders rs in the configured format.
func (rw *Writer) Write(rs []Record) error {
	switch rw.opts.Format {
	case JSON:
		enc := json.NewEncoder(rw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	case YAML:
		enc := yaml.NewEncoder(rw.w)
		if err := enc.Encode(rs); err != nil {
			return err
		}
		return enc.Close()
	case Template:
		return rw.writeTemplate(rs)
	}
	return rw.writeText(rs)
}

func (rw *Writer) writeText(rs []Record) error {
	for _, r := range rs {
		var sb strings.Builder
		if rw.opts.Swatch {
			sb.WriteString(rw.swatch(r.Hex))
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d\t%s", r.Rank, r.Color)
		if r.Hex != "" {
			fmt.Fprintf(&sb, "\t%s", r.Hex)
		}
		fmt.Fprintf(&sb, "\tlab(%.4f, %.4f, %.4f)", r.Lab.L, r.Lab.A, r.Lab.B)
		if r.Distance != nil {
			fmt.Fprintf(&sb, "\t%.4f", *r.Distance)
		}
		sb.WriteString("\n")

		if _, err := io.WriteString(rw.w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func (rw *Writer) swatch(hex string) string {
	if hex == "" {
		return "  "
	}
	return rw.term.String("  ").Background(rw.term.Color(hex)).String()
}

func (rw *Writer) writeTemplate(rs []Record) error {
	for _, r := range rs {
		o, err := rw.tpl.Execute(context(r))
		if err != nil {
			return fmt.Errorf("execute template: %w", err)
		}
		if _, err := io.WriteString(rw.w, o+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// context exposes a record to templates. RGB sources add red, green and blue.
func context(r Record) pongo2.Context {
	ctxt := pongo2.Context{
		"rank":  r.Rank,
		"color": r.Color,
		"hex":   r.Hex,
		"l":     r.Lab.L,
		"a":     r.Lab.A,
		"b":     r.Lab.B,
		"alpha": r.Lab.Alpha,
	}
	if r.Distance != nil {
		ctxt["distance"] = *r.Distance
	}
	if rgb, ok := r.Source.(colorspace.RGB); ok {
		ctxt["red"] = rgb.Red
		ctxt["green"] = rgb.Green
		ctxt["blue"] = rgb.Blue
	}
	return ctxt
}
