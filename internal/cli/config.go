package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tintscale/internal/scale"
)

const envPrefix = "TINTSCALE"

// Flag names double as viper keys; TINTSCALE_<NAME> with dashes as
// underscores overrides the default of every one of them.
const (
	flagVerbose      = "verbose"
	flagQuiet        = "quiet"
	flagLogLevel     = "log-level"
	flagTemplatesDir = "templates-dir"

	flagName               = "name"
	flagHue                = "hue"
	flagFrom               = "from"
	flagFromImage          = "from-image"
	flagImageCache         = "image-cache"
	flagBackground         = "background"
	flagNeutral            = "neutral"
	flagMinSaturation      = "min-saturation"
	flagMaxSaturation      = "max-saturation"
	flagIndices            = "indices"
	flagMaxIndex           = "max-index"
	flagStrategy           = "strategy"
	flagTolerance          = "tolerance"
	flagMaxIterations      = "max-iterations"
	flagContrastMultiplier = "contrast-multiplier"
	flagHueDrift           = "hue-drift"
	flagNeutralK           = "neutral-saturation-multiplier"
	flagChromaticK         = "chromatic-saturation-multiplier"
	flagPrimaryIndex       = "primary-index"
	flagPairOffset         = "pair-offset"
	flagThreshold          = "threshold"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// envKey returns the environment variable that overrides a flag.
func envKey(flag string) string {
	return envPrefix + "_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(flag))
}

// explicit reports whether the user set a flag on the command line or
// through the environment, as opposed to inheriting its default.
func explicit(cmd *cobra.Command, flag string) bool {
	if cmd.Flags().Changed(flag) {
		return true
	}
	_, ok := os.LookupEnv(envKey(flag))
	return ok
}

// strategyValue is a pflag.Value that only accepts known solver strategies.
type strategyValue scale.Strategy

var _ pflag.Value = (*strategyValue)(nil)

func (s *strategyValue) String() string { return string(*s) }

func (s *strategyValue) Set(v string) error {
	parsed, err := scale.ParseStrategy(v)
	if err != nil {
		return err
	}
	*s = strategyValue(parsed)
	return nil
}

func (s *strategyValue) Type() string { return "strategy" }

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// registerScaleFlags adds one flag per scale setting, defaulting to
// scale.DefaultConfig.
func registerScaleFlags(fs *pflag.FlagSet) {
	def := scale.DefaultConfig()

	fs.String(flagName, def.Name, "scale name used in exports")
	fs.Float64P(flagHue, "H", def.BaseHue, "base hue in degrees")
	fs.String(flagFrom, "", "derive the base hue from a seed colour (hex)")
	fs.String(flagFromImage, "", "derive the base hue from an image file or URL")
	fs.StringP(flagBackground, "b", def.Background, "background colour (hex); unreadable values fall back to white")
	fs.Bool(flagNeutral, def.Neutral, "neutral scale (no hue drift, gentle saturation curve)")
	fs.Float64(flagMinSaturation, def.MinSaturation, "saturation at the ends of the scale")
	fs.Float64(flagMaxSaturation, def.MaxSaturation, "saturation ceiling")
	fs.String(flagIndices, joinInts(def.Indices), "comma-separated scale indices, ascending")
	fs.Int(flagMaxIndex, def.MaxIndex, "index that maps to the darkest step")

	strategy := strategyValue(def.Strategy)
	fs.Var(&strategy, flagStrategy, fmt.Sprintf("lightness solver (%s)", strings.Join(strategyNames(), ", ")))

	fs.Float64(flagTolerance, def.SearchTolerance, "bisection bracket width at which to stop")
	fs.Int(flagMaxIterations, def.MaxIterations, "bisection iteration cap")
	fs.Float64(flagContrastMultiplier, def.ContrastMultiplier, "exponent of the target contrast curve")
	fs.Float64(flagHueDrift, def.HueDrift, "hue shift in degrees at the light end of chromatic scales")
	fs.Float64(flagNeutralK, def.NeutralSaturationMultiplier, "saturation curve strength for neutral scales")
	fs.Float64(flagChromaticK, def.ChromaticSaturationMultiplier, "saturation curve strength for chromatic scales")
	fs.Int(flagPrimaryIndex, def.PrimaryIndex, "index checked against the background")
	fs.Int(flagPairOffset, def.PairOffset, "offset between paired indices (0 disables pair checks)")
	fs.Float64(flagThreshold, def.AAThreshold, "contrast ratio a check must reach to pass")
}

func strategyNames() []string {
	var names []string
	for _, s := range scale.Strategies() {
		names = append(names, s.String())
	}
	return names
}

// resolveConfig reads the scale configuration from flags and environment.
func resolveConfig(v *viper.Viper) (scale.Config, error) {
	cfg := scale.DefaultConfig()

	indices, err := scale.ParseIndices(v.GetString(flagIndices))
	if err != nil {
		return cfg, fmt.Errorf("--%s: %w", flagIndices, err)
	}
	strategy, err := scale.ParseStrategy(v.GetString(flagStrategy))
	if err != nil {
		return cfg, fmt.Errorf("--%s: %w", flagStrategy, err)
	}

	cfg.Name = v.GetString(flagName)
	cfg.BaseHue = v.GetFloat64(flagHue)
	cfg.Background = v.GetString(flagBackground)
	cfg.Neutral = v.GetBool(flagNeutral)
	cfg.MinSaturation = v.GetFloat64(flagMinSaturation)
	cfg.MaxSaturation = v.GetFloat64(flagMaxSaturation)
	cfg.Indices = indices
	cfg.MaxIndex = v.GetInt(flagMaxIndex)
	cfg.Strategy = strategy
	cfg.SearchTolerance = v.GetFloat64(flagTolerance)
	cfg.MaxIterations = v.GetInt(flagMaxIterations)
	cfg.ContrastMultiplier = v.GetFloat64(flagContrastMultiplier)
	cfg.HueDrift = v.GetFloat64(flagHueDrift)
	cfg.NeutralSaturationMultiplier = v.GetFloat64(flagNeutralK)
	cfg.ChromaticSaturationMultiplier = v.GetFloat64(flagChromaticK)
	cfg.PrimaryIndex = v.GetInt(flagPrimaryIndex)
	cfg.PairOffset = v.GetInt(flagPairOffset)
	cfg.AAThreshold = v.GetFloat64(flagThreshold)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// splitList flattens comma-separated entries; environment values arrive as
// a single string.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
