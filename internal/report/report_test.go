package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/tintscale/internal/scale"
)

func sampleReport() *scale.Report {
	return &scale.Report{
		Name:       "neutral",
		BaseHue:    250,
		Background: "#ffffff",
		Strategy:   scale.StrategyBisection,
		Threshold:  4.5,
		Rows: []scale.Row{
			{Index: 100, TargetContrast: 1.36, ActualContrast: 1.37, Hex: "#dcdde1"},
			{Index: 500, TargetContrast: 4.56, ActualContrast: 4.58, Hex: "#6d7079"},
			{Index: 600, TargetContrast: 6.18, ActualContrast: 6.21, Hex: "#575a62"},
		},
		Primary: &scale.Check{A: 500, HexA: "#6d7079", HexB: "#ffffff", Background: true, Contrast: 4.58, Pass: true},
		Pairs: []scale.Check{
			{A: 600, B: 100, HexA: "#575a62", HexB: "#dcdde1", Contrast: 4.53, Pass: true},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "TABLE", want: FormatTable},
		{in: " json ", want: FormatJSON},
		{in: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), Options{Format: FormatText}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := []string{
		"Generating scale for Hue 250 against #ffffff",
		"Scale #: Target Contrast -> Actual Contrast -> Hex Color",
		"--------------------------------------------------------",
		"100: 1.36 -> 1.37 -> #dcdde1",
		"500: 4.56 -> 4.58 -> #6d7079",
		"--- AA Check (500 vs Background): PASS (Contrast: 4.58) ---",
		"600: 6.18 -> 6.21 -> #575a62",
		"",
		"--- AA Check (600 vs 100): PASS (Contrast: 4.53) ---",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("text output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText_Fail(t *testing.T) {
	r := sampleReport()
	r.Primary.Pass = false
	r.Primary.Contrast = 3.1

	var buf bytes.Buffer
	if err := Write(&buf, r, Options{}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.Contains(buf.String(), "--- AA Check (500 vs Background): FAIL (Contrast: 3.10) ---") {
		t.Errorf("missing failing primary line:\n%s", buf.String())
	}
}

func TestWriteText_Colour(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), Options{Format: FormatText, Colour: true, Swatches: true}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI escapes with colour enabled")
	}
	if !strings.Contains(out, Swatch("#6d7079")+" #6d7079") {
		t.Error("expected a swatch beside #6d7079")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), Options{Format: FormatTable}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"neutral (hue 250, background #ffffff, bisection)",
		"Index  Target  Actual  Hex",
		"  500    4.56    4.58  #6d7079",
		"500 vs Background      4.58  PASS",
		"600 vs 100             4.53  PASS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("unexpected ANSI escapes with colour disabled")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), Options{Format: FormatJSON}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var decoded scale.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(sampleReport(), &decoded); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sampleReport(), Options{Format: "xml"}); err == nil {
		t.Error("Write() with unknown format expected an error")
	}
}

func TestSwatch(t *testing.T) {
	if got, want := Swatch("#ff8000"), "\x1b[48;2;255;128;0m  \x1b[0m"; got != want {
		t.Errorf("Swatch() = %q, want %q", got, want)
	}
	if got := Swatch("nope"); got != "  " {
		t.Errorf("Swatch(invalid) = %q, want two spaces", got)
	}
}
