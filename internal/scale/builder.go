package scale

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tintscale/internal/colour"
	"github.com/lucasb-eyer/go-colorful"
)

// FallbackHex is used for any entry whose colour cannot be converted.
const FallbackHex = "#ffffff"

// Result is a built scale together with what it was built against.
type Result struct {
	Config     Config
	Background Background
	Palette    *Palette
	Strategy   Strategy

	space colour.Space
}

// Builder builds a scale from a configuration.
type Builder struct {
	config Config
	space  colour.Space
	logger hclog.Logger
}

// NewBuilder creates a Builder with the default colour space and no logging.
func NewBuilder(config Config) *Builder {
	return &Builder{
		config: config,
		space:  colour.NewOKHSLSpace(),
		logger: hclog.NewNullLogger(),
	}
}

// WithSpace overrides the colour space (useful for testing).
func (b *Builder) WithSpace(space colour.Space) *Builder {
	if space != nil {
		b.space = space
	}
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Build validates the configuration and solves every index in ascending
// order. Colour conversion problems never fail the build; they produce
// fallback entries instead.
func (b *Builder) Build() (*Result, error) {
	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy, _ := ParseStrategy(string(cfg.Strategy))
	bg := NewBackground(b.space, cfg.Background, b.logger)
	solver := NewSolver(strategy, b.space, cfg.SearchTolerance, cfg.MaxIterations, b.logger.Named("solver"))
	shaping := ShapingFromConfig(cfg)

	b.logger.Debug("building scale",
		"name", cfg.Name,
		"hue", cfg.BaseHue,
		"background", bg.Hex,
		"light_background", bg.IsLight(),
		"strategy", strategy,
		"indices", len(cfg.Indices))

	entries := make([]Entry, 0, len(cfg.Indices))
	for _, index := range cfg.Indices {
		targets := MapIndexToTargets(index, cfg.MaxIndex, cfg.BaseHue, cfg.MinSaturation, cfg.MaxSaturation, cfg.Neutral, shaping)
		lightness := solver.Solve(Target{Hue: targets.Hue, Saturation: targets.Saturation, Contrast: targets.Contrast}, bg)

		entry := Entry{
			Index:     index,
			Targets:   targets,
			Lightness: lightness,
		}

		c, err := b.space.ToDevice(entry.OKHSL())
		if err != nil {
			b.logger.Warn("conversion failed, using fallback colour", "index", index, "error", err)
			entry.Colour = colorful.Color{R: 1, G: 1, B: 1}
			entry.Hex = FallbackHex
			entry.Fallback = true
		} else {
			entry.Colour = c
			entry.Hex = b.space.FormatHex(c)
		}

		b.logger.Debug("solved",
			"index", index,
			"hue", fmt.Sprintf("%.2f", targets.Hue),
			"saturation", fmt.Sprintf("%.3f", targets.Saturation),
			"target", fmt.Sprintf("%.2f", targets.Contrast),
			"lightness", fmt.Sprintf("%.4f", lightness),
			"hex", entry.Hex)

		entries = append(entries, entry)
	}

	return &Result{
		Config:     cfg,
		Background: bg,
		Palette:    NewPalette(cfg.Name, entries),
		Strategy:   strategy,
		space:      b.space,
	}, nil
}

// Build is shorthand for NewBuilder(config).Build().
func Build(config Config) (*Result, error) {
	return NewBuilder(config).Build()
}
