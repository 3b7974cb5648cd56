package scale

import (
	"encoding/json"

	"github.com/jmylchreest/tintscale/internal/colour"
	"github.com/lucasb-eyer/go-colorful"
)

// Row is the measured outcome for one palette entry.
type Row struct {
	Index          int     `json:"index"`
	TargetContrast float64 `json:"targetContrast"`
	ActualContrast float64 `json:"actualContrast"`
	Hex            string  `json:"hex"`
	Fallback       bool    `json:"fallback,omitempty"`
}

// Check is an accessibility check between two colours. B is unused and
// HexB is the background hex when the check is against the background.
type Check struct {
	A          int     `json:"a"`
	B          int     `json:"b"`
	HexA       string  `json:"hexA"`
	HexB       string  `json:"hexB"`
	Background bool    `json:"background,omitempty"`
	Contrast   float64 `json:"contrast"`
	Pass       bool    `json:"pass"`
}

// MarshalJSON leaves out b for background checks only, so index 0 survives
// in pairs.
func (c Check) MarshalJSON() ([]byte, error) {
	type plain Check
	if !c.Background {
		return json.Marshal(plain(c))
	}
	return json.Marshal(struct {
		plain
		B *int `json:"b,omitempty"`
	}{plain: plain(c)})
}

// Report is a read-only summary of a built scale. Building it never
// re-solves anything.
type Report struct {
	Name       string   `json:"name"`
	BaseHue    float64  `json:"baseHue"`
	Background string   `json:"background"`
	Strategy   Strategy `json:"strategy"`
	Threshold  float64  `json:"threshold"`
	Rows       []Row    `json:"rows"`
	Primary    *Check   `json:"primary,omitempty"`
	Pairs      []Check  `json:"pairs"`
}

// Passed reports whether every check in the report passed.
func (r *Report) Passed() bool {
	if r.Primary != nil && !r.Primary.Pass {
		return false
	}
	for _, p := range r.Pairs {
		if !p.Pass {
			return false
		}
	}
	return true
}

// Report measures every entry against the background, checks the primary
// index, and checks each index against the one PairOffset above it.
func (res *Result) Report() *Report {
	cfg := res.Config
	threshold := cfg.AAThreshold

	r := &Report{
		Name:       cfg.Name,
		BaseHue:    cfg.BaseHue,
		Background: res.Background.Hex,
		Strategy:   res.Strategy,
		Threshold:  threshold,
		Rows:       make([]Row, 0, res.Palette.Len()),
		Pairs:      []Check{},
	}

	for _, e := range res.Palette.Entries() {
		r.Rows = append(r.Rows, Row{
			Index:          e.Index,
			TargetContrast: e.Targets.Contrast,
			ActualContrast: res.contrast(e.Colour, res.Background.Colour),
			Hex:            e.Hex,
			Fallback:       e.Fallback,
		})
	}

	if e, ok := res.Palette.Get(cfg.PrimaryIndex); ok {
		contrast := res.contrast(e.Colour, res.Background.Colour)
		r.Primary = &Check{
			A:          e.Index,
			HexA:       e.Hex,
			HexB:       res.Background.Hex,
			Background: true,
			Contrast:   contrast,
			Pass:       contrast >= threshold,
		}
	}

	if cfg.PairOffset > 0 {
		for _, lo := range res.Palette.Entries() {
			hi, ok := res.Palette.Get(lo.Index + cfg.PairOffset)
			if !ok {
				continue
			}
			contrast := res.contrast(hi.Colour, lo.Colour)
			r.Pairs = append(r.Pairs, Check{
				A:        hi.Index,
				B:        lo.Index,
				HexA:     hi.Hex,
				HexB:     lo.Hex,
				Contrast: contrast,
				Pass:     contrast >= threshold,
			})
		}
	}

	return r
}

func (res *Result) contrast(a, b colorful.Color) float64 {
	space := res.space
	if space == nil {
		space = colour.NewOKHSLSpace()
	}
	return space.ContrastRatio(a, b)
}
