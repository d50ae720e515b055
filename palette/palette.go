// Package palette keeps a set of reference colors and finds the ones that are
// perceptually nearest to, or farthest from, a query color.
//
// A Palette is not safe for concurrent use. Callers sharing one must serialize
// Add and Reset against each other and against queries.
package palette

import (
	"io"
	"log/slog"

	"github.com/mmuldo/colormatch/colorspace"
	"github.com/mmuldo/colormatch/deltae"
)

// Entry is a haystack color: its Lab form plus the value it was added as.
type Entry struct {
	Lab    colorspace.Lab
	Source colorspace.Color
}

type options struct {
	metric    deltae.Metric
	converter colorspace.Converter
	logger    *slog.Logger
}

// Option configures a Palette.
type Option func(*options)

// WithMetric sets the distance metric. Nil selects deltae.CIE2000.
func WithMetric(m deltae.Metric) Option {
	return func(o *options) {
		if m == nil {
			m = deltae.CIE2000
		}
		o.metric = m
	}
}

// WithConverter sets how added and queried colors are turned into Lab. Nil
// selects colorspace.Standard.
func WithConverter(c colorspace.Converter) Option {
	return func(o *options) {
		if c == nil {
			c = colorspace.Standard
		}
		o.converter = c
	}
}

// WithLogger sets the logger used for debug output. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Palette is an ordered haystack of reference colors.
type Palette struct {
	entries []Entry
	opts    options
}

// New creates a Palette seeded with colors, which may be empty.
func New(colors []colorspace.Color, optFns ...Option) *Palette {
	opts := options{
		metric:    deltae.CIE2000,
		converter: colorspace.Standard,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Palette{opts: opts}
	if len(colors) > 0 {
		p.Add(colors...)
	}
	return p
}

// Reset drops every entry.
func (p *Palette) Reset() *Palette {
	p.opts.logger.Debug("palette reset", "dropped", len(p.entries))
	p.entries = nil
	return p
}

// Add converts each color to Lab and appends it, keeping the given order.
func (p *Palette) Add(colors ...colorspace.Color) *Palette {
	for _, c := range colors {
		p.entries = append(p.entries, Entry{
			Lab:    p.opts.converter.ToLab(c),
			Source: c,
		})
	}
	p.opts.logger.Debug("colors added", "count", len(colors), "size", len(p.entries))
	return p
}

// Len returns the number of entries.
func (p *Palette) Len() int { return len(p.entries) }

// Entries returns a copy of the haystack in insertion order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}
