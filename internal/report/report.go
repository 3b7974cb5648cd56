// Package report renders scale reports for the terminal and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/tintscale/internal/scale"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON}
}

// ParseFormat converts a string to a Format. An empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: text, table, json)", s)
	}
}

// Options controls terminal decoration.
type Options struct {
	Format Format

	// Colour highlights PASS and FAIL verdicts.
	Colour bool

	// Swatches prints a truecolour block beside every hex value.
	Swatches bool
}

// Write renders r to w.
func Write(w io.Writer, r *scale.Report, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatTable:
		return writeTable(w, r, newStyle(opts))
	case FormatText, "":
		return writeText(w, r, newStyle(opts))
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

type style struct {
	pass     *color.Color
	fail     *color.Color
	swatches bool
}

func newStyle(opts Options) style {
	s := style{
		pass:     color.New(color.FgGreen, color.Bold),
		fail:     color.New(color.FgRed, color.Bold),
		swatches: opts.Swatches,
	}
	if opts.Colour {
		s.pass.EnableColor()
		s.fail.EnableColor()
	} else {
		s.pass.DisableColor()
		s.fail.DisableColor()
	}
	return s
}

func (s style) verdict(pass bool) string {
	if pass {
		return s.pass.Sprint("PASS")
	}
	return s.fail.Sprint("FAIL")
}

// hex returns the hex value, preceded by a swatch when enabled.
func (s style) hex(h string) string {
	if !s.swatches {
		return h
	}
	return Swatch(h) + " " + h
}

// Swatch returns a two-cell truecolour block for a hex colour, or two
// spaces when the hex cannot be read.
func Swatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "  "
	}
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}

func checkLabel(c scale.Check) string {
	if c.Background {
		return fmt.Sprintf("%d vs Background", c.A)
	}
	return fmt.Sprintf("%d vs %d", c.A, c.B)
}

func writeText(w io.Writer, r *scale.Report, s style) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generating scale for Hue %g against %s\n", r.BaseHue, r.Background)
	header := "Scale #: Target Contrast -> Actual Contrast -> Hex Color"
	sb.WriteString(header + "\n")
	sb.WriteString(strings.Repeat("-", len(header)) + "\n")

	for _, row := range r.Rows {
		fmt.Fprintf(&sb, "%d: %.2f -> %.2f -> %s\n", row.Index, row.TargetContrast, row.ActualContrast, s.hex(row.Hex))
		if r.Primary != nil && r.Primary.A == row.Index {
			fmt.Fprintf(&sb, "--- AA Check (%s): %s (Contrast: %.2f) ---\n", checkLabel(*r.Primary), s.verdict(r.Primary.Pass), r.Primary.Contrast)
		}
	}

	if len(r.Pairs) > 0 {
		sb.WriteString("\n")
		for _, p := range r.Pairs {
			fmt.Fprintf(&sb, "--- AA Check (%s): %s (Contrast: %.2f) ---\n", checkLabel(p), s.verdict(p.Pass), p.Contrast)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTable(w io.Writer, r *scale.Report, s style) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (hue %g, background %s, %s)\n\n", r.Name, r.BaseHue, r.Background, r.Strategy)

	rows := NewTable([]string{"Index", "Target", "Actual", "Hex"})
	for col := range 3 {
		rows.SetAlign(col, AlignRight)
	}
	if s.swatches {
		rows.SetDecorator(3, s.hex)
	}
	for _, row := range r.Rows {
		hex := row.Hex
		if row.Fallback {
			hex += " *"
		}
		rows.AddRow([]string{
			fmt.Sprint(row.Index),
			fmt.Sprintf("%.2f", row.TargetContrast),
			fmt.Sprintf("%.2f", row.ActualContrast),
			hex,
		})
	}
	sb.WriteString(rows.Render())

	checks := make([]scale.Check, 0, len(r.Pairs)+1)
	if r.Primary != nil {
		checks = append(checks, *r.Primary)
	}
	checks = append(checks, r.Pairs...)

	if len(checks) > 0 {
		sb.WriteString("\n")
		t := NewTable([]string{"Check", "Contrast", fmt.Sprintf("AA (%.1f)", r.Threshold)})
		t.SetAlign(1, AlignRight)
		t.SetDecorator(2, func(v string) string { return s.verdict(v == "PASS") })
		for _, c := range checks {
			verdict := "FAIL"
			if c.Pass {
				verdict = "PASS"
			}
			t.AddRow([]string{checkLabel(c), fmt.Sprintf("%.2f", c.Contrast), verdict})
		}
		sb.WriteString(t.Render())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
