package colour

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrParse is returned when a hex string cannot be read as a colour.
	ErrParse = errors.New("invalid hex colour")

	// ErrConversion is returned when an OKHSL colour has no displayable
	// sRGB equivalent.
	ErrConversion = errors.New("colour conversion failed")
)

// ConversionError records the OKHSL input that failed to convert.
type ConversionError struct {
	Colour OKHSL
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: okhsl(%.2f, %.3f, %.3f): %s", ErrConversion, e.Colour.H, e.Colour.S, e.Colour.L, e.Reason)
}

// Unwrap lets errors.Is match ErrConversion.
func (e *ConversionError) Unwrap() error {
	return ErrConversion
}

// Space is the set of colour operations a scale needs. Device colours are
// 8-bit quantised sRGB so that every measurement matches what the hex
// output will actually display.
type Space interface {
	// Parse reads a #rrggbb (or #rgb) string.
	Parse(hex string) (colorful.Color, error)

	// Luminance returns CIE XYZ Y in [0, 1].
	Luminance(c colorful.Color) float64

	// ToDevice converts an OKHSL colour. Lightness is clamped to [0, 1],
	// hue is wrapped and saturation clamped.
	ToDevice(p OKHSL) (colorful.Color, error)

	// FormatHex formats a device colour as #rrggbb.
	FormatHex(c colorful.Color) string

	// ContrastRatio returns the WCAG contrast between two device colours.
	ContrastRatio(a, b colorful.Color) float64
}

// OKHSLSpace implements Space on top of go-colorful.
type OKHSLSpace struct{}

// NewOKHSLSpace returns the default colour space.
func NewOKHSLSpace() *OKHSLSpace {
	return &OKHSLSpace{}
}

// Parse implements Space.
func (OKHSLSpace) Parse(hex string) (colorful.Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q: %v", ErrParse, hex, err)
	}
	return c, nil
}

// Luminance implements Space.
func (OKHSLSpace) Luminance(c colorful.Color) float64 {
	_, y, _ := c.Clamped().Xyz()
	return clamp01(y)
}

// ToDevice implements Space.
func (OKHSLSpace) ToDevice(p OKHSL) (colorful.Color, error) {
	h := math.Mod(p.H, 360)
	if h < 0 {
		h += 360
	}
	s := clamp01(p.S)
	l := clamp01(p.L)

	if math.IsNaN(p.H) || math.IsInf(p.H, 0) {
		return colorful.Color{}, &ConversionError{Colour: p, Reason: "hue is not finite"}
	}
	if math.IsNaN(p.S) || math.IsNaN(p.L) {
		return colorful.Color{}, &ConversionError{Colour: p, Reason: "saturation or lightness is NaN"}
	}

	r, g, b := okhslToLinearRGB(h, s, l)
	if !finite(r) || !finite(g) || !finite(b) {
		return colorful.Color{}, &ConversionError{Colour: p, Reason: "gamut mapping produced a non-finite value"}
	}

	return Quantize(colorful.LinearRgb(clamp01(r), clamp01(g), clamp01(b))), nil
}

// FormatHex implements Space.
func (OKHSLSpace) FormatHex(c colorful.Color) string {
	return c.Clamped().Hex()
}

// ContrastRatio implements Space.
func (OKHSLSpace) ContrastRatio(a, b colorful.Color) float64 {
	return ContrastRatio(a, b)
}

// Quantize snaps a colour to the nearest 8-bit sRGB value.
func Quantize(c colorful.Color) colorful.Color {
	r, g, b := c.Clamped().RGB255()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// HueOf returns the OKLCh hue of a colour in degrees. OKHSL shares this hue
// axis, so it is used to seed a scale from an existing colour.
func HueOf(c colorful.Color) float64 {
	_, _, h := c.OkLch()
	return h
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
