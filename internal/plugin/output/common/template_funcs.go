// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// TemplateFuncs returns the template functions shared by all exporters.
// Colour functions take a hex string so they compose in pipelines.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Format conversion.
		"hexNoHash": hexNoHashFunc,
		"rgb":       rgbFunc,
		"rgbSpaces": rgbSpacesFunc,
		"oklch":     oklchFunc,

		// String manipulation (custom wrappers for pipe-friendly argument order).
		"kebab":   Kebab,
		"replace": replaceFunc,
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
	}
}

func rgb255(hex string) (r, g, b uint8, err error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex %q: %w", hex, err)
	}
	r, g, b = c.Clamped().RGB255()
	return r, g, b, nil
}

func hexNoHashFunc(hex string) string {
	return strings.TrimPrefix(hex, "#")
}

// rgbFunc formats as "rgb(r, g, b)".
func rgbFunc(hex string) (string, error) {
	r, g, b, err := rgb255(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), nil
}

// rgbSpacesFunc formats as "r g b", the channel form used inside rgb(var(--x)).
func rgbSpacesFunc(hex string) (string, error) {
	r, g, b, err := rgb255(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d %d", r, g, b), nil
}

// greyChroma is the OKLCh chroma below which a colour is written as grey.
const greyChroma = 5e-4

// oklchFunc formats as a CSS oklch() value.
func oklchFunc(hex string) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("invalid hex %q: %w", hex, err)
	}
	l, ch, h := c.OkLch()
	// sRGB greys land a little off the neutral axis (white is about 1.25e-4).
	if ch < greyChroma {
		ch, h = 0, 0
	}
	return fmt.Sprintf("oklch(%.2f%% %.4f %.2f)", l*100, ch, h), nil
}

func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}

// Kebab lower-cases s and joins runs of letters and digits with hyphens,
// making it safe for CSS custom property and JS key names.
func Kebab(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return sb.String()
}
