package cli

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// setupLogging builds the command logger. Warnings are shown by default,
// --verbose shows debug, --log-level picks any level, --quiet wins.
func (a *app) setupLogging(cmd *cobra.Command) error {
	level := hclog.Warn
	if a.viper.GetBool(flagVerbose) {
		level = hclog.Debug
	}
	if s := strings.TrimSpace(a.viper.GetString(flagLogLevel)); s != "" {
		level = hclog.LevelFromString(s)
		if level == hclog.NoLevel {
			return fmt.Errorf("invalid log level %q", s)
		}
	}
	if a.viper.GetBool(flagQuiet) {
		level = hclog.Off
	}

	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "tintscale",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
	return nil
}
