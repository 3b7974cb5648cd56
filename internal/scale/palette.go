package scale

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/jmylchreest/tintscale/internal/colour"
	"github.com/lucasb-eyer/go-colorful"
)

// Entry is one solved step of a scale.
type Entry struct {
	Index     int            `json:"index"`
	Targets   Targets        `json:"targets"`
	Lightness float64        `json:"lightness"`
	Colour    colorful.Color `json:"-"`
	Hex       string         `json:"hex"`
	// Fallback is set when the solved colour could not be converted and
	// the safe default was used.
	Fallback bool `json:"fallback,omitempty"`
}

// OKHSL returns the perceptual colour the entry was built from.
func (e Entry) OKHSL() colour.OKHSL {
	return colour.OKHSL{H: e.Targets.Hue, S: e.Targets.Saturation, L: e.Lightness}
}

// Palette is an ordered set of entries keyed by index.
type Palette struct {
	Name    string
	entries []Entry
	byIndex map[int]int
}

// NewPalette creates a palette from entries in the given order.
func NewPalette(name string, entries []Entry) *Palette {
	p := &Palette{
		Name:    name,
		entries: append([]Entry(nil), entries...),
		byIndex: make(map[int]int, len(entries)),
	}
	for i, e := range p.entries {
		p.byIndex[e.Index] = i
	}
	return p
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Get returns the entry for an index.
func (p *Palette) Get(index int) (Entry, bool) {
	i, ok := p.byIndex[index]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Entries returns a copy of the entries in order.
func (p *Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Indices returns the palette indices in order.
func (p *Palette) Indices() []int {
	out := make([]int, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Index
	}
	return out
}

// ToHex returns the hex colours in order.
func (p *Palette) ToHex() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Hex
	}
	return out
}

// All returns an iterator over index and entry pairs in order.
func (p *Palette) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for _, e := range p.entries {
			if !yield(e.Index, e) {
				return
			}
		}
	}
}

// MarshalJSON encodes the palette as an ordered list of entries.
func (p *Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string  `json:"name"`
		Count   int     `json:"count"`
		Entries []Entry `json:"entries"`
	}{
		Name:    p.Name,
		Count:   len(p.entries),
		Entries: p.entries,
	})
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.entries) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette %q with %d colours:\n", p.Name, len(p.entries))
	for _, e := range p.entries {
		fmt.Fprintf(&sb, "  %4d: %s\n", e.Index, e.Hex)
	}
	return sb.String()
}
