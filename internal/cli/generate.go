package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/tintscale/internal/colour"
	"github.com/jmylchreest/tintscale/internal/image"
	"github.com/jmylchreest/tintscale/internal/plugin/output"
	"github.com/jmylchreest/tintscale/internal/report"
	"github.com/jmylchreest/tintscale/internal/scale"
	"github.com/jmylchreest/tintscale/internal/util/imagecache"
)

// ErrChecksFailed is returned by generate --strict when an AA check fails.
var ErrChecksFailed = errors.New("accessibility checks failed")

const (
	flagFormat    = "format"
	flagColour    = "colour"
	flagSwatches  = "swatches"
	flagOutputs   = "outputs"
	flagOutputDir = "output-dir"
	flagDryRun    = "dry-run"
	flagStrict    = "strict"
)

func (a *app) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a contrast-targeted colour scale",
		Long: `Build a colour scale and report the contrast of every step.

Every index is solved for the OKHSL lightness that reaches its target
contrast against the background. The report ends with an AA check of the
primary index against the background and of each index against the one a
pair offset above it.

Settings can also be given as environment variables, e.g. TINTSCALE_HUE=20
or TINTSCALE_BACKGROUND=#1e1e2e.

Output Plugins:
` + a.pluginHelp() + `
Examples:
  # Default neutral scale against white
  tintscale generate

  # Chromatic scale from a brand colour on a dark background
  tintscale generate --from "#3b82f6" -b "#0b0b10"

  # Hue from the dominant colour of a logo, exported for Tailwind
  tintscale generate --from-image logo.png --name brand --outputs tailwind

  # Machine-readable report, failing when a check does not pass
  tintscale generate --hue 150 --neutral=false --format json --strict`,
		Args: cobra.NoArgs,
		RunE: a.runGenerate,
	}

	registerScaleFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(flagFrom, flagFromImage)
	cmd.MarkFlagsMutuallyExclusive(flagHue, flagFrom)
	cmd.MarkFlagsMutuallyExclusive(flagHue, flagFromImage)

	cmd.Flags().Bool(flagImageCache, false, "cache images downloaded by --from-image under the user cache directory")

	cmd.Flags().StringP(flagFormat, "f", string(report.FormatText), "report format (text, table, json)")
	cmd.Flags().String(flagColour, "auto", "colour the report (auto, always, never)")
	cmd.Flags().Bool(flagSwatches, true, "show colour swatches when colour is enabled")
	cmd.Flags().StringSliceP(flagOutputs, "o", nil, "output plugins to run (comma-separated or 'all')")
	cmd.Flags().String(flagOutputDir, "", "write every output here instead of each plugin's default")
	cmd.Flags().Bool(flagDryRun, false, "report what would be written without writing")
	cmd.Flags().Bool(flagStrict, false, "exit non-zero when an accessibility check fails")

	for _, name := range a.plugins.Registry().List() {
		p, _ := a.plugins.Get(name)
		p.RegisterFlags(cmd)
	}

	return cmd
}

func (a *app) pluginHelp() string {
	var sb strings.Builder
	for _, name := range a.plugins.Registry().List() {
		p, _ := a.plugins.Get(name)
		state := ""
		if !a.plugins.IsEnabled(name) {
			state = " (disabled)"
		}
		fmt.Fprintf(&sb, "  %-9s - %s%s\n", name, p.Description(), state)
	}
	return sb.String()
}

func (a *app) runGenerate(cmd *cobra.Command, _ []string) error {
	v := a.viper

	cfg, err := resolveConfig(v)
	if err != nil {
		return err
	}
	if err := a.applySeed(cmd, &cfg); err != nil {
		return err
	}

	format, err := report.ParseFormat(v.GetString(flagFormat))
	if err != nil {
		return err
	}
	colourOn, err := useColour(v.GetString(flagColour), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	plugins, err := a.plugins.Resolve(splitList(v.GetStringSlice(flagOutputs)))
	if err != nil {
		return err
	}

	a.logger.Debug("building scale", "name", cfg.Name, "hue", cfg.BaseHue, "background", cfg.Background,
		"neutral", cfg.Neutral, "strategy", cfg.Strategy, "indices", len(cfg.Indices))

	result, err := scale.NewBuilder(cfg).WithLogger(a.logger.Named("scale")).Build()
	if err != nil {
		return err
	}
	rep := result.Report()

	opts := report.Options{
		Format:   format,
		Colour:   colourOn,
		Swatches: colourOn && v.GetBool(flagSwatches),
	}
	if err := report.Write(cmd.OutOrStdout(), rep, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := a.runOutputs(cmd, plugins, result); err != nil {
		return err
	}

	if !rep.Passed() {
		a.logger.Warn("accessibility checks failed", "threshold", rep.Threshold)
		if v.GetBool(flagStrict) {
			return ErrChecksFailed
		}
	}
	return nil
}

// applySeed replaces the base hue with one derived from --from or
// --from-image. A seeded scale is chromatic unless --neutral was given.
// A seed set only in the environment yields to --hue or the other seed
// given on the command line.
func (a *app) applySeed(cmd *cobra.Command, cfg *scale.Config) error {
	from := a.seedSource(cmd, flagFrom, flagHue, flagFromImage)
	fromImage := a.seedSource(cmd, flagFromImage, flagHue, flagFrom)
	if from != "" && fromImage != "" {
		return fmt.Errorf("--%s and --%s cannot be combined", flagFrom, flagFromImage)
	}

	var hue float64
	switch {
	case from != "":
		c, err := colour.NewOKHSLSpace().Parse(from)
		if err != nil {
			return fmt.Errorf("--%s: %w", flagFrom, err)
		}
		hue = colour.HueOf(c)
		a.logger.Debug("seeded hue from colour", "colour", from, "hue", hue)
	case fromImage != "":
		seed, err := seedFromImage(cmd.Context(), fromImage, a.viper.GetBool(flagImageCache))
		if err != nil {
			return fmt.Errorf("--%s: %w", flagFromImage, err)
		}
		hue = seed.Hue
		a.logger.Debug("seeded hue from image", "path", fromImage, "hue", hue, "colour", seed.Hex, "weight", seed.Weight)
	default:
		return nil
	}

	cfg.BaseHue = hue
	if !explicit(cmd, flagNeutral) {
		cfg.Neutral = false
	}
	return nil
}

// seedSource returns the value of a seed flag, or "" when it comes from
// the environment and one of the overriding flags was set explicitly.
func (a *app) seedSource(cmd *cobra.Command, flag string, overriding ...string) string {
	value := strings.TrimSpace(a.viper.GetString(flag))
	if value == "" || cmd.Flags().Changed(flag) {
		return value
	}
	for _, o := range overriding {
		if cmd.Flags().Changed(o) {
			a.logger.Info("ignoring seed from environment", "env", envKey(flag), "flag", "--"+o)
			return ""
		}
	}
	return value
}

func seedFromImage(ctx context.Context, path string, cache bool) (colour.HueSeed, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loader := image.NewSmartLoader()
	if cache {
		loader.Cache = &imagecache.Options{}
	}
	img, err := loader.Load(ctx, path)
	if err != nil {
		return colour.HueSeed{}, err
	}
	return colour.NewHueExtractor().Extract(img)
}

func (a *app) runOutputs(cmd *cobra.Command, plugins []output.Plugin, result *scale.Result) error {
	if len(plugins) == 0 {
		return nil
	}

	dir := a.viper.GetString(flagOutputDir)
	dryRun := a.viper.GetBool(flagDryRun)
	a.configureTemplates()

	for _, p := range plugins {
		logger := a.logger.Named(p.Name())
		if lp, ok := p.(interface{ SetLogger(hclog.Logger) }); ok {
			lp.SetLogger(logger)
		}

		paths, err := output.WriteFiles(p, result, dir, dryRun, logger)
		if err != nil {
			return err
		}
		for _, path := range paths {
			if dryRun {
				fmt.Fprintf(cmd.ErrOrStderr(), "Would write %s\n", path)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
			}
		}
	}
	return nil
}

// useColour decides whether the report is decorated. Auto colours only a
// terminal and respects NO_COLOR.
func useColour(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --%s %q (must be auto, always or never)", flagColour, mode)
	}
}
