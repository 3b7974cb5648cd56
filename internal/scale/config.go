// Package scale builds contrast-targeted colour scales.
package scale

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Strategy selects how a target contrast is turned into a lightness.
type Strategy string

const (
	// StrategyBisection searches lightness against measured contrast.
	StrategyBisection Strategy = "bisection"
	// StrategyClosedForm derives lightness from the WCAG luminance formula.
	StrategyClosedForm Strategy = "closed-form"
)

// Strategies lists the valid strategies.
func Strategies() []Strategy {
	return []Strategy{StrategyBisection, StrategyClosedForm}
}

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyBisection, "":
		return StrategyBisection, nil
	case StrategyClosedForm, "closedform", "fast":
		return StrategyClosedForm, nil
	default:
		return "", fmt.Errorf("invalid strategy: %s (must be 'bisection' or 'closed-form')", s)
	}
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	return string(s)
}

// DefaultContrastMultiplier is ln(20.25) plus a small margin so that the
// whole scale reaches AA against its mid point.
var DefaultContrastMultiplier = math.Log(20.25) + 0.01155

// DefaultIndices is the default palette index sequence.
var DefaultIndices = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950, 1000}

// Config is the full parameter set for one scale. Treat it as immutable
// once validated.
type Config struct {
	Name          string
	Indices       []int
	MaxIndex      int
	BaseHue       float64
	MinSaturation float64
	MaxSaturation float64
	Neutral       bool
	Background    string

	ContrastMultiplier float64
	SearchTolerance    float64
	MaxIterations      int
	Strategy           Strategy

	// Tuned shaping constants.
	HueDrift                      float64
	NeutralSaturationMultiplier   float64
	ChromaticSaturationMultiplier float64

	// Reporting.
	PrimaryIndex int
	PairOffset   int
	AAThreshold  float64
}

// DefaultConfig returns the reference configuration: a neutral blue-grey
// scale on white.
func DefaultConfig() Config {
	return Config{
		Name:                          "neutral",
		Indices:                       append([]int(nil), DefaultIndices...),
		MaxIndex:                      1000,
		BaseHue:                       250,
		MinSaturation:                 0.15,
		MaxSaturation:                 0.85,
		Neutral:                       true,
		Background:                    "#FFFFFF",
		ContrastMultiplier:            DefaultContrastMultiplier,
		SearchTolerance:               0.001,
		MaxIterations:                 30,
		Strategy:                      StrategyBisection,
		HueDrift:                      5,
		NeutralSaturationMultiplier:   0.8,
		ChromaticSaturationMultiplier: 4,
		PrimaryIndex:                  500,
		PairOffset:                    500,
		AAThreshold:                   4.5,
	}
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid scale configuration")

// Validate checks the configuration. It does not validate the background
// hex: an unreadable background falls back to white at build time.
func (c Config) Validate() error {
	var errs []error

	if len(c.Indices) == 0 {
		errs = append(errs, errors.New("at least one index is required"))
	}
	if c.MaxIndex <= 0 {
		errs = append(errs, fmt.Errorf("max index must be positive, got %d", c.MaxIndex))
	}
	for i, idx := range c.Indices {
		if idx < 0 || idx > c.MaxIndex {
			errs = append(errs, fmt.Errorf("index %d outside [0, %d]", idx, c.MaxIndex))
		}
		if i > 0 && idx <= c.Indices[i-1] {
			errs = append(errs, fmt.Errorf("indices must be strictly ascending: %d after %d", idx, c.Indices[i-1]))
		}
	}
	if c.MinSaturation < 0 || c.MaxSaturation > 1 || c.MinSaturation > c.MaxSaturation {
		errs = append(errs, fmt.Errorf("saturation range [%v, %v] must satisfy 0 <= min <= max <= 1", c.MinSaturation, c.MaxSaturation))
	}
	if math.IsNaN(c.BaseHue) || math.IsInf(c.BaseHue, 0) {
		errs = append(errs, errors.New("base hue must be finite"))
	}
	if c.ContrastMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("contrast multiplier must be positive, got %v", c.ContrastMultiplier))
	}
	if c.SearchTolerance <= 0 || c.SearchTolerance >= 1 {
		errs = append(errs, fmt.Errorf("search tolerance must be in (0, 1), got %v", c.SearchTolerance))
	}
	if c.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations))
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		errs = append(errs, err)
	}
	// The parabola peaks at k/4 of the saturation range, so k above 4
	// would overshoot the maximum.
	for _, k := range []float64{c.NeutralSaturationMultiplier, c.ChromaticSaturationMultiplier} {
		if k <= 0 || k > 4 {
			errs = append(errs, fmt.Errorf("saturation multiplier must be in (0, 4], got %v", k))
		}
	}
	if c.PairOffset < 0 {
		errs = append(errs, fmt.Errorf("pair offset must not be negative, got %d", c.PairOffset))
	}
	if c.AAThreshold < 1 {
		errs = append(errs, fmt.Errorf("AA threshold must be at least 1, got %v", c.AAThreshold))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseIndices parses a comma separated index list such as "50,100,200".
func ParseIndices(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
