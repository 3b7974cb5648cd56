// Package swatch renders a colour scale as a PNG strip.
package swatch

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/tintscale/internal/colour"
	"github.com/jmylchreest/tintscale/internal/plugin/output"
	"github.com/jmylchreest/tintscale/internal/plugin/output/common"
	"github.com/jmylchreest/tintscale/internal/scale"
)

const (
	minCellSize = 32
	maxCellSize = 512
	labelInset  = 6
)

// Plugin implements the output.Plugin interface for PNG swatches.
type Plugin struct {
	cellSize  int
	labels    bool
	outputDir string
}

// New creates a new swatch output plugin.
func New() *Plugin {
	return &Plugin{
		cellSize: 96,
		labels:   true,
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "swatch"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render the scale as a labelled PNG swatch strip"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.cellSize, "swatch.size", p.cellSize, "Edge length of each swatch cell in pixels")
	cmd.Flags().BoolVar(&p.labels, "swatch.labels", p.labels, "Draw the index and hex value on each cell")
	cmd.Flags().StringVar(&p.outputDir, "swatch.output-dir", "", "Output directory (default: current directory)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.cellSize < minCellSize || p.cellSize > maxCellSize {
		return fmt.Errorf("invalid swatch size: %d (must be between %d and %d)", p.cellSize, minCellSize, maxCellSize)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Generate renders one square cell per palette entry, left to right.
func (p *Plugin) Generate(result *scale.Result) (map[string][]byte, error) {
	if result == nil {
		return nil, output.ErrNilResult
	}

	img := p.Render(result.Palette)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	name := common.Kebab(result.Config.Name)
	if name == "" {
		name = "scale"
	}
	return map[string][]byte{name + ".png": buf.Bytes()}, nil
}

// Render draws the palette into an image.
func (p *Plugin) Render(palette *scale.Palette) *image.RGBA {
	size := p.cellSize
	img := image.NewRGBA(image.Rect(0, 0, max(palette.Len(), 1)*size, size))

	for i, e := range palette.Entries() {
		r, g, b := e.Colour.Clamped().RGB255()
		fill := color.RGBA{R: r, G: g, B: b, A: 255}
		cell := image.Rect(i*size, 0, (i+1)*size, size)
		draw.Draw(img, cell, &image.Uniform{C: fill}, image.Point{}, draw.Src)

		if p.labels {
			ink := labelColour(e)
			drawLabel(img, cell, ink, strconv.Itoa(e.Index), e.Hex)
		}
	}
	return img
}

// labelColour picks black or white, whichever contrasts more with the cell.
func labelColour(e scale.Entry) color.Color {
	black, white := colorful.Color{}, colorful.Color{R: 1, G: 1, B: 1}
	if colour.ContrastRatio(e.Colour, black) >= colour.ContrastRatio(e.Colour, white) {
		return color.Black
	}
	return color.White
}

func drawLabel(img draw.Image, cell image.Rectangle, ink color.Color, lines ...string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
	}

	lineHeight := face.Metrics().Height
	y := cell.Max.Y - labelInset - lineHeight.Ceil()*(len(lines)-1)
	for _, line := range lines {
		d.Dot = fixed.P(cell.Min.X+labelInset, y)
		d.DrawString(line)
		y += lineHeight.Ceil()
	}
}
