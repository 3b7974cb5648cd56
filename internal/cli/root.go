// Package cli provides the command-line interface for tintscale.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tintscale/internal/plugin/manager"
	"github.com/jmylchreest/tintscale/internal/version"
)

// app is the state shared by one command tree.
type app struct {
	viper   *viper.Viper
	plugins *manager.Manager
	logger  hclog.Logger
}

// NewRootCmd builds a fresh command tree. Each call has its own flags,
// configuration and plugin instances.
func NewRootCmd() *cobra.Command {
	a := &app{
		viper:   newViper(),
		plugins: manager.NewBuilder().WithEnvConfig().Build(),
		logger:  hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "tintscale",
		Short: "Contrast-targeted colour scale generator",
		Long: `tintscale builds colour scales in the OKHSL space where every step hits a
WCAG contrast ratio against a chosen background.

Each index (50, 100, ... 1000) maps to a hue, a saturation and a target
contrast; the lightness that meets the target is then solved for, so the
scale is accessible by construction. The result is reported with AA checks
and can be exported for Tailwind CSS or as a PNG swatch.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			return a.setupLogging(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP(flagQuiet, "q", false, "suppress all logging")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().String(flagTemplatesDir, "", "directory holding template overrides (default: ~/.config/tintscale/templates)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(a.newGenerateCmd())
	rootCmd.AddCommand(a.newContrastCmd())
	rootCmd.AddCommand(a.newTemplatesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
