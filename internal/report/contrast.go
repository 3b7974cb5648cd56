package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/tintscale/internal/colour"
)

// Measurement is a single foreground/background contrast reading.
type Measurement struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
}

// Level returns "AAA", "AA" or "fail".
func (m Measurement) Level() string {
	return colour.Level(m.Ratio)
}

// WriteContrast renders a measurement.
func WriteContrast(w io.Writer, m Measurement, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Measurement
			AA    bool   `json:"aa"`
			AAA   bool   `json:"aaa"`
			Level string `json:"level"`
		}{m, m.Ratio >= colour.ContrastAA, m.Ratio >= colour.ContrastAAA, m.Level()})
	case FormatText, FormatTable, "":
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	s := newStyle(opts)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s on %s\n", s.hex(m.Foreground), s.hex(m.Background))
	fmt.Fprintf(&sb, "Contrast: %.2f:1\n", m.Ratio)
	fmt.Fprintf(&sb, "AA (%.1f):  %s\n", colour.ContrastAA, s.verdict(m.Ratio >= colour.ContrastAA))
	fmt.Fprintf(&sb, "AAA (%.1f): %s\n", colour.ContrastAAA, s.verdict(m.Ratio >= colour.ContrastAAA))

	_, err := io.WriteString(w, sb.String())
	return err
}
