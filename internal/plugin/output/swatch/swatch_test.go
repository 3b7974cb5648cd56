package swatch

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	outputtesting "github.com/jmylchreest/tintscale/internal/plugin/output/testing"
	"github.com/jmylchreest/tintscale/internal/scale"
)

func TestSwatchPlugin(t *testing.T) {
	outputtesting.RunAllTests(t, New(), outputtesting.TestConfig{
		ExpectedName:  "swatch",
		ExpectedFiles: []string{"neutral.png"},
	})
}

func TestSwatchPlugin_Validate(t *testing.T) {
	for _, tt := range []struct {
		size    int
		wantErr bool
	}{
		{size: 96},
		{size: minCellSize},
		{size: 8, wantErr: true},
		{size: 4096, wantErr: true},
	} {
		p := New()
		p.cellSize = tt.size
		if err := p.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(size=%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
		}
	}
}

func TestSwatchPlugin_GenerateDecodes(t *testing.T) {
	result := outputtesting.CreateTestResult(t, "#ffffff")
	p := New()
	p.cellSize = 40

	files, err := p.Generate(result)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(files["neutral.png"]))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}

	n := result.Palette.Len()
	if b := img.Bounds(); b.Dx() != n*40 || b.Dy() != 40 {
		t.Fatalf("bounds = %v, want %dx40", b, n*40)
	}

	// The top-left pixel of each cell is unlabelled and matches its entry.
	for i, e := range result.Palette.Entries() {
		r, g, b := e.Colour.Clamped().RGB255()
		want := color.RGBA{R: r, G: g, B: b, A: 255}
		if got := color.RGBAModel.Convert(img.At(i*40+1, 1)); got != want {
			t.Errorf("cell %d pixel = %v, want %v (%s)", e.Index, got, want, e.Hex)
		}
	}
}

func TestSwatchPlugin_LabelsUseContrastingInk(t *testing.T) {
	white := scale.Entry{Index: 1, Hex: "#ffffff", Colour: colorful.Color{R: 1, G: 1, B: 1}}
	black := scale.Entry{Index: 2, Hex: "#000000"}

	if got := labelColour(white); got != color.Black {
		t.Errorf("label on white = %v, want black", got)
	}
	if got := labelColour(black); got != color.White {
		t.Errorf("label on black = %v, want white", got)
	}
}

func TestSwatchPlugin_NoLabels(t *testing.T) {
	result := outputtesting.CreateTestResult(t, "#ffffff")
	p := New()
	p.cellSize = 32
	p.labels = false

	img := p.Render(result.Palette)
	e := result.Palette.Entries()[0]
	r, g, b := e.Colour.Clamped().RGB255()
	want := color.RGBA{R: r, G: g, B: b, A: 255}
	// Without labels every pixel of the cell is the fill colour.
	if got := img.RGBAAt(16, 26); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}
