package palette

import (
	"github.com/mmuldo/colormatch/colorspace"
)

// Match is a ranked haystack entry together with its distance to the query.
type Match struct {
	Entry
	Distance float64
}

// Nearest returns up to amount sources ordered nearest first. ok is false
// when the palette is empty.
func (p *Palette) Nearest(query colorspace.Color, amount int) (colors []colorspace.Color, ok bool) {
	return p.Compare(query, amount, false)
}

// Farthest returns up to amount sources ordered farthest first. ok is false
// when the palette is empty.
func (p *Palette) Farthest(query colorspace.Color, amount int) (colors []colorspace.Color, ok bool) {
	return p.Compare(query, amount, true)
}

// Compare ranks the haystack against query and returns the sources of the
// best amount entries. amount is clamped to the haystack size; a value below 1
// gives an empty result. ok is false, and colors nil, when the palette is
// empty.
func (p *Palette) Compare(query colorspace.Color, amount int, farthestFirst bool) (colors []colorspace.Color, ok bool) {
	matches, ok := p.Matches(query, amount, farthestFirst)
	if !ok {
		return nil, false
	}

	colors = make([]colorspace.Color, len(matches))
	for i, m := range matches {
		colors[i] = m.Source
	}
	return colors, true
}

// Matches is Compare with the distances kept.
func (p *Palette) Matches(query colorspace.Color, amount int, farthestFirst bool) ([]Match, bool) {
	if len(p.entries) == 0 {
		p.opts.logger.Debug("compare on empty palette")
		return nil, false
	}

	needle := p.opts.converter.ToLab(query)
	r := newRanking(min(max(amount, 0), len(p.entries)), farthestFirst)
	for _, straw := range p.entries {
		r.offer(Match{
			Entry:    straw,
			Distance: p.opts.metric(needle, straw.Lab),
		})
	}

	p.opts.logger.Debug("compare completed",
		"amount", amount,
		"farthest", farthestFirst,
		"size", len(p.entries),
		"results", len(r.slots),
	)
	return r.slots, true
}

// ranking is a bounded list kept in rank order. A candidate displaces a slot
// only when strictly better, so equal distances stay in arrival order.
type ranking struct {
	slots    []Match
	farthest bool
}

func newRanking(size int, farthest bool) *ranking {
	return &ranking{
		slots:    make([]Match, 0, size),
		farthest: farthest,
	}
}

func (r *ranking) better(a, b float64) bool {
	if r.farthest {
		return a > b
	}
	return a < b
}

func (r *ranking) offer(m Match) {
	i := 0
	for i < len(r.slots) && !r.better(m.Distance, r.slots[i].Distance) {
		i++
	}

	switch {
	case len(r.slots) < cap(r.slots):
		r.slots = append(r.slots, Match{})
	case i == len(r.slots):
		return
	}
	copy(r.slots[i+1:], r.slots[i:len(r.slots)-1])
	r.slots[i] = m
}
