package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tintscale/internal/colour"
	"github.com/jmylchreest/tintscale/internal/report"
)

func (a *app) newContrastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Measure the WCAG contrast ratio between two colours",
		Long: `Measure the WCAG 2 contrast ratio between two hex colours and show whether
it passes AA (4.5:1) and AAA (7:1) for normal text.

Examples:
  tintscale contrast "#767676" "#ffffff"
  tintscale contrast 1e1e2e cdd6f4 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			space := colour.NewOKHSLSpace()
			fg, err := space.Parse(args[0])
			if err != nil {
				return err
			}
			bg, err := space.Parse(args[1])
			if err != nil {
				return err
			}

			format, err := report.ParseFormat(a.viper.GetString(flagFormat))
			if err != nil {
				return err
			}
			colourOn, err := useColour(a.viper.GetString(flagColour), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			a.logger.Debug("measuring contrast", "foreground", args[0], "background", args[1])
			m := report.Measurement{
				Foreground: space.FormatHex(fg),
				Background: space.FormatHex(bg),
				Ratio:      space.ContrastRatio(fg, bg),
			}
			return report.WriteContrast(cmd.OutOrStdout(), m, report.Options{
				Format:   format,
				Colour:   colourOn,
				Swatches: colourOn,
			})
		},
	}

	cmd.Flags().StringP(flagFormat, "f", string(report.FormatText), "output format (text, table, json)")
	cmd.Flags().String(flagColour, "auto", "colour the output (auto, always, never)")
	return cmd
}
