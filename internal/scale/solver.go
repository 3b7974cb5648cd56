package scale

import (
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tintscale/internal/colour"
	"github.com/lucasb-eyer/go-colorful"
)

// lightBackgroundThreshold splits light from dark backgrounds by luminance.
const lightBackgroundThreshold = 0.18

// noContrast is the contrast at or below which no search is done.
const noContrast = 1.01

// Background is the fixed colour a scale is measured against.
type Background struct {
	Colour    colorful.Color
	Hex       string
	Luminance float64
	// Fallback is set when the configured hex could not be read and white
	// was substituted.
	Fallback bool
}

// IsLight reports whether the background counts as light.
func (b Background) IsLight() bool {
	return b.Luminance > lightBackgroundThreshold
}

// NewBackground parses a background hex. Unreadable input falls back to
// white rather than failing.
func NewBackground(space colour.Space, hex string, logger hclog.Logger) Background {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	c, err := space.Parse(hex)
	if err != nil {
		logger.Warn("background unreadable, assuming white", "background", hex, "error", err)
		white := colorful.Color{R: 1, G: 1, B: 1}
		return Background{Colour: white, Hex: space.FormatHex(white), Luminance: 1, Fallback: true}
	}

	c = colour.Quantize(c)
	return Background{Colour: c, Hex: space.FormatHex(c), Luminance: space.Luminance(c)}
}

// Target is what a solver is asked to hit.
type Target struct {
	Hue        float64
	Saturation float64
	Contrast   float64
}

// Solver finds the OKHSL lightness at which a colour reaches a target
// contrast against a background.
type Solver interface {
	Solve(target Target, bg Background) float64
	Strategy() Strategy
}

// NewSolver returns the solver for a strategy.
func NewSolver(strategy Strategy, space colour.Space, tolerance float64, maxIterations int, logger hclog.Logger) Solver {
	if strategy == StrategyClosedForm {
		return &ClosedFormSolver{}
	}
	return &BisectionSolver{
		Space:         space,
		Tolerance:     tolerance,
		MaxIterations: maxIterations,
		Logger:        logger,
	}
}

// ClosedFormSolver solves the WCAG definition for the foreground luminance
// and maps it to lightness. It ignores the effect of hue and saturation on
// luminance, so it is an estimate.
type ClosedFormSolver struct{}

// Strategy implements Solver.
func (*ClosedFormSolver) Strategy() Strategy {
	return StrategyClosedForm
}

// Solve implements Solver.
func (*ClosedFormSolver) Solve(target Target, bg Background) float64 {
	var y float64
	if bg.IsLight() {
		y = (bg.Luminance+0.05)/target.Contrast - 0.05
	} else {
		y = target.Contrast*(bg.Luminance+0.05) - 0.05
	}
	return LuminanceToLightness(clamp01(y))
}

// BisectionSolver searches lightness by measuring the converted colour.
type BisectionSolver struct {
	Space         colour.Space
	Tolerance     float64
	MaxIterations int
	Logger        hclog.Logger
}

// Strategy implements Solver.
func (*BisectionSolver) Strategy() Strategy {
	return StrategyBisection
}

// Solve implements Solver.
func (s *BisectionSolver) Solve(target Target, bg Background) float64 {
	logger := s.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if target.Contrast <= noContrast {
		return LstarToLightness(LuminanceToLstar(bg.Luminance))
	}

	light := bg.IsLight()
	low, high := 0.0, 1.0

	// Seed with the extreme furthest from the background.
	optimal := 1.0
	if light {
		optimal = 0
	}

	for i := 0; high-low > s.Tolerance && i < s.MaxIterations; i++ {
		mid := (low + high) / 2
		contrast := s.measure(target, mid, bg)

		if contrast < target.Contrast {
			// Too close to the background: move away from it.
			if light {
				high = mid
			} else {
				low = mid
			}
		} else {
			optimal = mid
			if light {
				low = mid
			} else {
				high = mid
			}
		}

		if logger.IsTrace() {
			logger.Trace("bisect", "iteration", i+1, "mid", mid, "contrast", contrast, "target", target.Contrast, "low", low, "high", high)
		}
	}

	// The loop can stop on tolerance with optimal trailing the bracket.
	// Check the passing side of the bracket first, then the other.
	final := optimal
	first, second := low, high
	if !light {
		first, second = high, low
	}
	switch {
	case s.measure(target, first, bg) >= target.Contrast:
		final = first
	case s.measure(target, second, bg) >= target.Contrast:
		final = second
	}

	return clamp01(final)
}

// measure returns the contrast of a trial lightness against the background.
// Conversion failures count as no contrast.
func (s *BisectionSolver) measure(target Target, l float64, bg Background) float64 {
	c, err := s.Space.ToDevice(colour.OKHSL{H: target.Hue, S: target.Saturation, L: clamp01(l)})
	if err != nil {
		return 1
	}
	ratio := s.Space.ContrastRatio(c, bg.Colour)
	if math.IsNaN(ratio) || ratio < 1 {
		return 1
	}
	return ratio
}
